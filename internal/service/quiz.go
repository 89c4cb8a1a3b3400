package service

import (
	"wordfolder/internal/domain"
	"wordfolder/internal/quiz"
	"wordfolder/internal/repository"
	"wordfolder/internal/workspace"

	"go.uber.org/zap"
)

// QuizService runs test mode for a user
type QuizService struct {
	repo    repository.WorkspaceRepository
	logger  *zap.Logger
	options []quiz.Option
}

// NewQuizService creates a new quiz service. Options are applied to every
// session it starts.
func NewQuizService(repo repository.WorkspaceRepository, logger *zap.Logger, opts ...quiz.Option) *QuizService {
	return &QuizService{repo: repo, logger: logger, options: opts}
}

// Start begins a test over the current words of a folder, replacing any
// active one
func (s *QuizService) Start(userID int64, folderID string) (domain.QuizView, error) {
	view, err := s.do(userID, func(ws *workspace.Workspace) error {
		folder, ok := ws.Store.Folder(folderID)
		if !ok {
			return domain.ErrFolderNotFound
		}
		ws.StartQuiz(folder, s.options...)
		return nil
	})
	if err != nil {
		return view, err
	}

	s.logger.Info("Quiz started",
		zap.Int64("user_id", userID),
		zap.String("folder_id", folderID),
		zap.Int("words", view.Total),
	)
	return view, nil
}

// Current returns the active test
func (s *QuizService) Current(userID int64) (domain.QuizView, error) {
	return s.do(userID, func(ws *workspace.Workspace) error { return nil })
}

// Reveal shows the translation of the current word
func (s *QuizService) Reveal(userID int64) (domain.QuizView, error) {
	return s.step(userID, (*quiz.Session).Reveal)
}

// MarkCorrect records a correct answer
func (s *QuizService) MarkCorrect(userID int64) (domain.QuizView, error) {
	view, err := s.step(userID, (*quiz.Session).MarkCorrect)
	s.logCompletion(userID, view, err)
	return view, err
}

// MarkIncorrect records an incorrect answer
func (s *QuizService) MarkIncorrect(userID int64) (domain.QuizView, error) {
	view, err := s.step(userID, (*quiz.Session).MarkIncorrect)
	s.logCompletion(userID, view, err)
	return view, err
}

// Restart reshuffles the test and clears the score
func (s *QuizService) Restart(userID int64) (domain.QuizView, error) {
	return s.step(userID, func(q *quiz.Session) error {
		q.Restart()
		return nil
	})
}

// Exit leaves test mode
func (s *QuizService) Exit(userID int64) error {
	return s.repo.With(userID, func(ws *workspace.Workspace) error {
		ws.ExitQuiz()
		return nil
	})
}

func (s *QuizService) step(userID int64, fn func(q *quiz.Session) error) (domain.QuizView, error) {
	return s.do(userID, func(ws *workspace.Workspace) error {
		if ws.Quiz == nil {
			return domain.ErrNoActiveQuiz
		}
		return fn(ws.Quiz)
	})
}

// do runs fn and returns the resulting quiz view
func (s *QuizService) do(userID int64, fn func(ws *workspace.Workspace) error) (domain.QuizView, error) {
	var view domain.QuizView
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		if err := fn(ws); err != nil {
			return err
		}
		var err error
		view, err = ws.QuizView()
		return err
	})
	return view, err
}

func (s *QuizService) logCompletion(userID int64, view domain.QuizView, err error) {
	if err != nil || !view.Complete {
		return
	}
	s.logger.Info("Quiz completed",
		zap.Int64("user_id", userID),
		zap.String("folder_id", view.FolderID),
		zap.Int("correct", view.Correct),
		zap.Int("incorrect", view.Incorrect),
		zap.Int("accuracy", view.Accuracy),
	)
}
