// Package workspace holds everything one user has during a bot session.
package workspace

import (
	"wordfolder/internal/domain"
	"wordfolder/internal/quiz"
	"wordfolder/internal/vocabulary"
)

// Workspace is the session-lifetime state of a single user
type Workspace struct {
	UserID int64
	Store  *vocabulary.Store

	// Active test, nil outside test mode
	Quiz           *quiz.Session
	QuizFolderID   string
	QuizFolderName string

	Pinned      []domain.PinnedArticle
	Suggestions []domain.Suggestion
}

// New creates an empty workspace
func New(userID int64) *Workspace {
	return &Workspace{
		UserID: userID,
		Store:  vocabulary.NewStore(),
	}
}

// StartQuiz replaces the active quiz with a new run over the folder's words
func (w *Workspace) StartQuiz(folder domain.Folder, opts ...quiz.Option) {
	w.Quiz = quiz.NewSession(folder.Words, opts...)
	w.QuizFolderID = folder.ID
	w.QuizFolderName = folder.Name
}

// QuizView returns the active quiz with folder details filled in
func (w *Workspace) QuizView() (domain.QuizView, error) {
	if w.Quiz == nil {
		return domain.QuizView{}, domain.ErrNoActiveQuiz
	}

	view := w.Quiz.View()
	view.FolderID = w.QuizFolderID
	view.FolderName = w.QuizFolderName
	return view, nil
}

// ExitQuiz discards the active quiz
func (w *Workspace) ExitQuiz() {
	w.Quiz = nil
	w.QuizFolderID = ""
	w.QuizFolderName = ""
}
