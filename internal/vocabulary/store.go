// Package vocabulary holds the in-memory collection of folders and words.
package vocabulary

import (
	"strings"

	"wordfolder/internal/domain"

	"github.com/google/uuid"
)

// Store owns the folders of one user. It is not safe for concurrent use;
// callers serialize access per user.
type Store struct {
	folders []domain.Folder
	newID   func() string
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator replaces the identifier generator
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateFolder appends a new empty folder and returns its id.
// Blank names are refused with domain.ErrEmptyFolderName.
func (s *Store) CreateFolder(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrEmptyFolderName
	}

	id := s.newID()
	s.folders = append(s.folders, domain.Folder{ID: id, Name: name, Words: []domain.Word{}})
	return id, nil
}

// DeleteFolder removes the folder together with its words.
// Unknown ids are ignored.
func (s *Store) DeleteFolder(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.folders = append(s.folders[:i], s.folders[i+1:]...)
}

// AddWord appends a word to the folder. Both fields are trimmed and must be
// non-empty. An unknown folder id is ignored.
func (s *Store) AddWord(folderID, sourceTerm, translation string) error {
	return s.AddWords(folderID, []domain.WordPair{{SourceTerm: sourceTerm, Translation: translation}})
}

// AddWords appends all pairs in order. The batch is rejected as a whole if any
// pair is blank. An unknown folder id is ignored.
func (s *Store) AddWords(folderID string, pairs []domain.WordPair) error {
	words := make([]domain.Word, 0, len(pairs))
	for _, p := range pairs {
		source := strings.TrimSpace(p.SourceTerm)
		translation := strings.TrimSpace(p.Translation)
		if source == "" || translation == "" {
			return domain.ErrEmptyWord
		}
		words = append(words, domain.Word{SourceTerm: source, Translation: translation})
	}

	i := s.index(folderID)
	if i < 0 {
		return nil
	}

	for j := range words {
		words[j].ID = s.newID()
	}
	s.folders[i].Words = append(s.folders[i].Words, words...)
	return nil
}

// RemoveWord removes the word from the folder if both exist
func (s *Store) RemoveWord(folderID, wordID string) {
	i := s.index(folderID)
	if i < 0 {
		return
	}

	words := s.folders[i].Words
	for j, w := range words {
		if w.ID == wordID {
			s.folders[i].Words = append(words[:j:j], words[j+1:]...)
			return
		}
	}
}

// ListFolders returns a copy of all folders in creation order
func (s *Store) ListFolders() []domain.Folder {
	folders := make([]domain.Folder, 0, len(s.folders))
	for _, f := range s.folders {
		folders = append(folders, cloneFolder(f))
	}
	return folders
}

// Folder returns a copy of the folder with the given id
func (s *Store) Folder(id string) (domain.Folder, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.Folder{}, false
	}
	return cloneFolder(s.folders[i]), true
}

func (s *Store) index(id string) int {
	for i, f := range s.folders {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func cloneFolder(f domain.Folder) domain.Folder {
	words := make([]domain.Word, len(f.Words))
	copy(words, f.Words)
	f.Words = words
	return f
}
