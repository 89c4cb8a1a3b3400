package domain

import "errors"

var ErrNoActiveQuiz = errors.New("no active quiz")

// QuizView is a read-only picture of a quiz session for rendering
type QuizView struct {
	FolderID   string
	FolderName string
	Current    Word
	Position   int
	Total      int
	Revealed   bool
	Correct    int
	Incorrect  int
	Complete   bool
	Progress   float64
	Accuracy   int
}

// ProgressPercent returns progress as a whole percentage
func (v QuizView) ProgressPercent() int {
	return int(v.Progress*100 + 0.5)
}
