package service

import (
	"wordfolder/internal/domain"
	"wordfolder/internal/repository"
	"wordfolder/internal/workspace"

	"go.uber.org/zap"
)

// VocabularyService handles folder and word operations of a user
type VocabularyService struct {
	repo   repository.WorkspaceRepository
	logger *zap.Logger
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(repo repository.WorkspaceRepository, logger *zap.Logger) *VocabularyService {
	return &VocabularyService{repo: repo, logger: logger}
}

// CreateFolder creates a folder and returns its id
func (s *VocabularyService) CreateFolder(userID int64, name string) (string, error) {
	var id string
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		var err error
		id, err = ws.Store.CreateFolder(name)
		return err
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("Folder created", zap.Int64("user_id", userID), zap.String("folder_id", id))
	return id, nil
}

// DeleteFolder deletes a folder with all its words
func (s *VocabularyService) DeleteFolder(userID int64, folderID string) error {
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		ws.Store.DeleteFolder(folderID)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Folder deleted", zap.Int64("user_id", userID), zap.String("folder_id", folderID))
	return nil
}

// AddWord adds a word-translation pair to a folder
func (s *VocabularyService) AddWord(userID int64, folderID, sourceTerm, translation string) error {
	return s.repo.With(userID, func(ws *workspace.Workspace) error {
		return ws.Store.AddWord(folderID, sourceTerm, translation)
	})
}

// AddWords adds several pairs to a folder in order
func (s *VocabularyService) AddWords(userID int64, folderID string, pairs []domain.WordPair) error {
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		return ws.Store.AddWords(folderID, pairs)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Words added",
		zap.Int64("user_id", userID),
		zap.String("folder_id", folderID),
		zap.Int("count", len(pairs)),
	)
	return nil
}

// RemoveWord removes a word from a folder
func (s *VocabularyService) RemoveWord(userID int64, folderID, wordID string) error {
	return s.repo.With(userID, func(ws *workspace.Workspace) error {
		ws.Store.RemoveWord(folderID, wordID)
		return nil
	})
}

// ListFolders returns all folders of the user
func (s *VocabularyService) ListFolders(userID int64) ([]domain.Folder, error) {
	var folders []domain.Folder
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		folders = ws.Store.ListFolders()
		return nil
	})
	return folders, err
}

// GetFolder returns a single folder or domain.ErrFolderNotFound
func (s *VocabularyService) GetFolder(userID int64, folderID string) (domain.Folder, error) {
	var folder domain.Folder
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		var ok bool
		folder, ok = ws.Store.Folder(folderID)
		if !ok {
			return domain.ErrFolderNotFound
		}
		return nil
	})
	return folder, err
}
