package domain

import "errors"

var (
	ErrEmptyFolderName = errors.New("folder name cannot be empty")
	ErrEmptyWord       = errors.New("word and translation cannot be empty")
	ErrFolderNotFound  = errors.New("folder not found")
)

// Word represents a word-translation pair owned by a folder
type Word struct {
	ID          string
	SourceTerm  string
	Translation string
}

// WordPair is a word-translation pair that has no identity yet
type WordPair struct {
	SourceTerm  string
	Translation string
}

// Folder is a named, ordered collection of words
type Folder struct {
	ID    string
	Name  string
	Words []Word
}

// Pairs returns the folder words without their identifiers
func (f Folder) Pairs() []WordPair {
	pairs := make([]WordPair, 0, len(f.Words))
	for _, w := range f.Words {
		pairs = append(pairs, WordPair{SourceTerm: w.SourceTerm, Translation: w.Translation})
	}
	return pairs
}
