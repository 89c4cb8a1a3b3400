package handler

import (
	"fmt"
	"strconv"
	"strings"

	"wordfolder/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// Button uniques. Together with the "\f" prefix and one id payload they must
// fit Telegram's 64 byte callback data limit.
const (
	uniqueMainMenu     = "main_menu"
	uniqueFolders      = "folders"
	uniqueNewFolder    = "new_folder"
	uniqueStats        = "stats"
	uniqueCancel       = "cancel"
	uniqueOpenFolder   = "folder"
	uniqueBackToFolder = "back_folder"
	uniqueAddWord      = "add_word"
	uniqueTranslate    = "translate"
	uniqueRemoveMenu   = "remove_menu"
	uniqueRemoveWord   = "remove_word"
	uniqueDeleteFolder = "delete_folder"
	uniqueConfirmDel   = "confirm_delete"
	uniqueStartTest    = "start_test"
	uniqueReveal       = "reveal"
	uniqueCorrect      = "correct"
	uniqueIncorrect    = "incorrect"
	uniqueRestart      = "restart"
	uniqueExitTest     = "exit_test"
	uniqueImport       = "import"
	uniqueAnalyzeURL   = "analyze_url"
	uniquePinArticle   = "pin_article"
	uniqueAnalyzePin   = "analyze_pin"
	uniqueUnpin        = "unpin"
	uniqueScanPhoto    = "scan_photo"
	uniqueToggle       = "toggle"
	uniqueAddSelected  = "add_selected"
)

// maxListed caps words shown in one message or keyboard
const maxListed = 40

const (
	mainMenuText = "🏠 Main menu\n\nChoose an action:"
	errorText    = "Something went wrong. Please try again later."
)

type markupFunc func() *tele.ReplyMarkup

func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("📁 My folders", uniqueFolders)),
		menu.Row(menu.Data("➕ New folder", uniqueNewFolder)),
		menu.Row(menu.Data("📊 Statistics", uniqueStats)),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("❌ Cancel", uniqueCancel)))
	return markup
}

func backToFolderMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("◀️ Back to folder", uniqueBackToFolder)))
	return markup
}

func pluralWords(n int) string {
	if n == 1 {
		return "1 word"
	}
	return strconv.Itoa(n) + " words"
}

func foldersText(folders []domain.Folder) string {
	if len(folders) == 0 {
		return "📁 No folders yet.\n\nCreate one to start adding words."
	}
	return fmt.Sprintf("📁 Your folders (%d):", len(folders))
}

func foldersMarkup(folders []domain.Folder) markupFunc {
	return func() *tele.ReplyMarkup {
		markup := &tele.ReplyMarkup{}
		rows := make([]tele.Row, 0, len(folders)+2)
		for _, f := range folders {
			text := fmt.Sprintf("%s (%d)", f.Name, len(f.Words))
			rows = append(rows, markup.Row(markup.Data(text, uniqueOpenFolder, f.ID)))
		}
		rows = append(rows,
			markup.Row(markup.Data("➕ New folder", uniqueNewFolder)),
			markup.Row(markup.Data("🏠 Main menu", uniqueMainMenu)),
		)
		markup.Inline(rows...)
		return markup
	}
}

func folderText(folder domain.Folder) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📂 %s · %s\n\n", folder.Name, pluralWords(len(folder.Words)))

	if len(folder.Words) == 0 {
		sb.WriteString("No words yet. Send a word to add it, or use the buttons below.")
		return sb.String()
	}

	for i, w := range folder.Words {
		if i == maxListed {
			fmt.Fprintf(&sb, "…and %d more\n", len(folder.Words)-maxListed)
			break
		}
		fmt.Fprintf(&sb, "%d. %s — %s\n", i+1, w.SourceTerm, w.Translation)
	}
	sb.WriteString("\nSend a word to add it.")
	return sb.String()
}

func folderMarkup(folder domain.Folder) markupFunc {
	return func() *tele.ReplyMarkup {
		markup := &tele.ReplyMarkup{}
		rows := []tele.Row{
			markup.Row(
				markup.Data("➕ Add word", uniqueAddWord),
				markup.Data("📝 Start test", uniqueStartTest, folder.ID),
			),
			markup.Row(
				markup.Data("📰 From article", uniqueImport),
				markup.Data("📷 From photo", uniqueScanPhoto),
			),
		}
		if len(folder.Words) > 0 {
			rows = append(rows, markup.Row(markup.Data("✖️ Remove word", uniqueRemoveMenu)))
		}
		rows = append(rows,
			markup.Row(markup.Data("🗑 Delete folder", uniqueDeleteFolder)),
			markup.Row(markup.Data("◀️ Folders", uniqueFolders)),
		)
		markup.Inline(rows...)
		return markup
	}
}

func removeWordsMarkup(folder domain.Folder) markupFunc {
	return func() *tele.ReplyMarkup {
		markup := &tele.ReplyMarkup{}
		rows := make([]tele.Row, 0, len(folder.Words)+1)
		for i, w := range folder.Words {
			if i == maxListed {
				break
			}
			text := fmt.Sprintf("✖️ %s — %s", w.SourceTerm, w.Translation)
			rows = append(rows, markup.Row(markup.Data(text, uniqueRemoveWord, w.ID)))
		}
		rows = append(rows, markup.Row(markup.Data("◀️ Back to folder", uniqueBackToFolder)))
		markup.Inline(rows...)
		return markup
	}
}

func confirmDeleteText(folder domain.Folder) string {
	return fmt.Sprintf("🗑 Delete \"%s\" and its %s?", folder.Name, pluralWords(len(folder.Words)))
}

func confirmDeleteMarkup(folder domain.Folder) markupFunc {
	return func() *tele.ReplyMarkup {
		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(
			markup.Data("🗑 Delete", uniqueConfirmDel, folder.ID),
			markup.Data("◀️ Keep", uniqueBackToFolder),
		))
		return markup
	}
}

// progressBar draws fraction as a bar of width cells
func progressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

func quizText(view domain.QuizView) string {
	var sb strings.Builder

	if view.Total == 0 {
		fmt.Fprintf(&sb, "📝 %s\n\nNo words available. Add some words to this folder first.", view.FolderName)
		return sb.String()
	}

	if view.Complete {
		fmt.Fprintf(&sb, "🏁 Test complete: %s\n\n", view.FolderName)
		fmt.Fprintf(&sb, "Accuracy: %d%%\n", view.Accuracy)
		fmt.Fprintf(&sb, "✅ Correct: %d\n", view.Correct)
		fmt.Fprintf(&sb, "❌ Incorrect: %d", view.Incorrect)
		return sb.String()
	}

	fmt.Fprintf(&sb, "📝 %s · word %d of %d\n", view.FolderName, view.Position+1, view.Total)
	fmt.Fprintf(&sb, "%s %d%%\n\n", progressBar(view.Progress, 10), view.ProgressPercent())
	fmt.Fprintf(&sb, "🇳🇴 %s\n", view.Current.SourceTerm)
	if view.Revealed {
		fmt.Fprintf(&sb, "🇬🇧 %s\n", view.Current.Translation)
	} else {
		sb.WriteString("🇬🇧 ?\n")
	}
	fmt.Fprintf(&sb, "\n✅ %d correct · ❌ %d incorrect", view.Correct, view.Incorrect)
	return sb.String()
}

func quizMarkup(view domain.QuizView) markupFunc {
	return func() *tele.ReplyMarkup {
		markup := &tele.ReplyMarkup{}
		var rows []tele.Row
		switch {
		case view.Complete:
			if view.Total > 0 {
				rows = append(rows, markup.Row(markup.Data("🔁 Restart", uniqueRestart)))
			}
		case view.Revealed:
			rows = append(rows, markup.Row(
				markup.Data("✅ Correct", uniqueCorrect),
				markup.Data("❌ Incorrect", uniqueIncorrect),
			))
		default:
			rows = append(rows, markup.Row(markup.Data("👁 Show answer", uniqueReveal)))
		}
		rows = append(rows, markup.Row(markup.Data("◀️ Leave test", uniqueExitTest)))
		markup.Inline(rows...)
		return markup
	}
}

func statsText(stats domain.Stats) string {
	var sb strings.Builder
	sb.WriteString("📊 Statistics\n\n")
	fmt.Fprintf(&sb, "📁 Total folders: %d\n", stats.TotalFolders)
	fmt.Fprintf(&sb, "🔤 Total words: %d\n", stats.TotalWords)
	fmt.Fprintf(&sb, "📈 Average per folder: %d\n", stats.AveragePerFolder)
	fmt.Fprintf(&sb, "📚 Vocabulary size: %d\n", stats.TotalWords)

	if stats.Largest != nil && stats.Smallest != nil {
		fmt.Fprintf(&sb, "\n⬆️ Largest: %s (%s)\n", stats.Largest.Name, pluralWords(stats.Largest.WordCount))
		fmt.Fprintf(&sb, "⬇️ Smallest: %s (%s)\n", stats.Smallest.Name, pluralWords(stats.Smallest.WordCount))
	}

	if len(stats.Folders) > 0 {
		sb.WriteString("\nFolders:\n")
		for _, f := range stats.Folders {
			fmt.Fprintf(&sb, "• %s — %d\n", f.Name, f.WordCount)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func statsMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("🏠 Main menu", uniqueMainMenu)))
	return markup
}

func importText(folderName string, pinned []domain.PinnedArticle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📰 Import from article into %s\n\n", folderName)
	if len(pinned) == 0 {
		sb.WriteString("No pinned articles.")
	} else {
		sb.WriteString("📌 Pinned articles:\n")
		for i, a := range pinned {
			fmt.Fprintf(&sb, "%d. %s\n%s\n", i+1, a.Title, a.URL)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func importMarkup(pinned []domain.PinnedArticle) markupFunc {
	return func() *tele.ReplyMarkup {
		markup := &tele.ReplyMarkup{}
		rows := []tele.Row{
			markup.Row(
				markup.Data("🔗 Analyze URL", uniqueAnalyzeURL),
				markup.Data("📌 Pin article", uniquePinArticle),
			),
		}
		for _, a := range pinned {
			rows = append(rows, markup.Row(
				markup.Data("✨ "+a.Title, uniqueAnalyzePin, a.ID),
				markup.Data("✖️", uniqueUnpin, a.ID),
			))
		}
		rows = append(rows, markup.Row(markup.Data("◀️ Back to folder", uniqueBackToFolder)))
		markup.Inline(rows...)
		return markup
	}
}

func suggestionsText(suggestions []domain.Suggestion) string {
	selected := len(domain.SelectedPairs(suggestions))
	return fmt.Sprintf("✨ Suggested words (%d selected)\n\nTap words to select them, then add them to the folder.", selected)
}

func suggestionsMarkup(suggestions []domain.Suggestion) markupFunc {
	return func() *tele.ReplyMarkup {
		markup := &tele.ReplyMarkup{}
		rows := make([]tele.Row, 0, len(suggestions)+2)
		for i, s := range suggestions {
			mark := "⬜️"
			if s.Selected {
				mark = "✅"
			}
			text := fmt.Sprintf("%s %s — %s", mark, s.SourceTerm, s.Translation)
			rows = append(rows, markup.Row(markup.Data(text, uniqueToggle, strconv.Itoa(i))))
		}
		rows = append(rows,
			markup.Row(markup.Data("➕ Add selected", uniqueAddSelected)),
			markup.Row(markup.Data("◀️ Back to folder", uniqueBackToFolder)),
		)
		markup.Inline(rows...)
		return markup
	}
}

func addedText(count int, folderName string) string {
	return fmt.Sprintf("Added %s to %s", pluralWords(count), folderName)
}
