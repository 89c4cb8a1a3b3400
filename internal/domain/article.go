package domain

import "errors"

var (
	ErrEmptyURL           = errors.New("please enter a URL")
	ErrInvalidURL         = errors.New("please enter a valid URL")
	ErrNothingSelected    = errors.New("please select at least one word")
	ErrNothingToTranslate = errors.New("fill exactly one of word and translation")
)

// PinnedArticle is an article URL saved for later import
type PinnedArticle struct {
	ID    string
	URL   string
	Title string
}

// Suggestion is a word proposed by article analysis or photo detection
type Suggestion struct {
	WordPair
	Selected bool
}

// SelectedPairs returns the pairs of selected suggestions in order
func SelectedPairs(suggestions []Suggestion) []WordPair {
	var pairs []WordPair
	for _, s := range suggestions {
		if s.Selected {
			pairs = append(pairs, s.WordPair)
		}
	}
	return pairs
}
