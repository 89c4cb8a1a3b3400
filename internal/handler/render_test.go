package handler

import (
	"testing"

	"wordfolder/internal/domain"
	"wordfolder/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		expected string
	}{
		{name: "empty", fraction: 0, expected: "▱▱▱▱▱▱▱▱▱▱"},
		{name: "half", fraction: 0.5, expected: "▰▰▰▰▰▱▱▱▱▱"},
		{name: "rounds", fraction: 0.34, expected: "▰▰▰▱▱▱▱▱▱▱"},
		{name: "full", fraction: 1, expected: "▰▰▰▰▰▰▰▰▰▰"},
		{name: "clamped low", fraction: -1, expected: "▱▱▱▱▱▱▱▱▱▱"},
		{name: "clamped high", fraction: 2, expected: "▰▰▰▰▰▰▰▰▰▰"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, progressBar(tt.fraction, 10))
		})
	}
}

func TestFoldersMarkup_FreshOnEachCall(t *testing.T) {
	folders := []domain.Folder{{ID: "f1", Name: "Animals", Words: []domain.Word{testutil.NewTestWord("w1", "hund", "dog")}}}
	build := foldersMarkup(folders)

	first := build()
	first.InlineKeyboard[0][0].Data = "\fchanged"
	second := build()

	require.Len(t, second.InlineKeyboard, 3)
	button := second.InlineKeyboard[0][0]
	assert.Equal(t, uniqueOpenFolder, button.Unique)
	assert.Equal(t, "f1", button.Data)
	assert.Equal(t, "Animals (1)", button.Text)
}

func TestFolderMarkup_RemoveOnlyWithWords(t *testing.T) {
	empty := folderMarkup(domain.Folder{ID: "f1", Name: "Empty"})()
	full := folderMarkup(domain.Folder{ID: "f1", Name: "Full", Words: []domain.Word{testutil.NewTestWord("w1", "hund", "dog")}})()

	assert.Len(t, empty.InlineKeyboard, 4)
	assert.Len(t, full.InlineKeyboard, 5)
	assert.Equal(t, uniqueRemoveMenu, full.InlineKeyboard[2][0].Unique)
	assert.Equal(t, "f1", full.InlineKeyboard[0][1].Data)
}

func TestQuizMarkup(t *testing.T) {
	tests := []struct {
		name     string
		view     domain.QuizView
		expected []string
	}{
		{
			name:     "awaiting reveal",
			view:     domain.QuizView{Total: 2},
			expected: []string{uniqueReveal, uniqueExitTest},
		},
		{
			name:     "revealed",
			view:     domain.QuizView{Total: 2, Revealed: true},
			expected: []string{uniqueCorrect, uniqueIncorrect, uniqueExitTest},
		},
		{
			name:     "complete",
			view:     domain.QuizView{Total: 2, Complete: true},
			expected: []string{uniqueRestart, uniqueExitTest},
		},
		{
			name:     "empty folder",
			view:     domain.QuizView{Complete: true},
			expected: []string{uniqueExitTest},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markup := quizMarkup(tt.view)()

			var uniques []string
			for _, row := range markup.InlineKeyboard {
				for _, button := range row {
					uniques = append(uniques, button.Unique)
				}
			}
			assert.Equal(t, tt.expected, uniques)
		})
	}
}

func TestQuizText(t *testing.T) {
	view := domain.QuizView{
		FolderName: "Animals",
		Current:    domain.Word{SourceTerm: "hund", Translation: "dog"},
		Position:   1,
		Total:      4,
		Correct:    1,
		Progress:   0.5,
	}

	hidden := quizText(view)
	assert.Contains(t, hidden, "word 2 of 4")
	assert.Contains(t, hidden, "hund")
	assert.NotContains(t, hidden, "dog")

	view.Revealed = true
	assert.Contains(t, quizText(view), "dog")

	assert.Contains(t, quizText(domain.QuizView{FolderName: "Empty", Complete: true}), "No words available")

	done := quizText(domain.QuizView{FolderName: "Animals", Total: 3, Complete: true, Correct: 2, Incorrect: 1, Accuracy: 67})
	assert.Contains(t, done, "Accuracy: 67%")
}

func TestStatsText(t *testing.T) {
	stats := domain.NewStats([]domain.Folder{
		{ID: "1", Name: "Animals", Words: make([]domain.Word, 3)},
		{ID: "2", Name: "Food", Words: make([]domain.Word, 1)},
	})

	text := statsText(stats)

	assert.Contains(t, text, "Total folders: 2")
	assert.Contains(t, text, "Total words: 4")
	assert.Contains(t, text, "Average per folder: 2")
	assert.Contains(t, text, "Largest: Animals (3 words)")
	assert.Contains(t, text, "Smallest: Food (1 word)")
	assert.NotContains(t, statsText(domain.NewStats(nil)), "Largest")
}

func TestSuggestionsMarkup(t *testing.T) {
	suggestions := []domain.Suggestion{
		{WordPair: domain.WordPair{SourceTerm: "hund", Translation: "dog"}, Selected: true},
		{WordPair: domain.WordPair{SourceTerm: "katt", Translation: "cat"}},
	}

	markup := suggestionsMarkup(suggestions)()

	require.Len(t, markup.InlineKeyboard, 4)
	assert.Equal(t, "✅ hund — dog", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "1", markup.InlineKeyboard[1][0].Data)
	assert.Equal(t, uniqueAddSelected, markup.InlineKeyboard[2][0].Unique)
	assert.Contains(t, suggestionsText(suggestions), "1 selected")
}

func TestAddedText(t *testing.T) {
	assert.Equal(t, "Added 1 word to Animals", addedText(1, "Animals"))
	assert.Equal(t, "Added 3 words to Animals", addedText(3, "Animals"))
}
