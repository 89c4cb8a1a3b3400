package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wordfolder/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// assistantTimeout bounds a single mock assistant call
const assistantTimeout = 30 * time.Second

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	h.authService.EnsureUserExists(userID)

	// If not authorized, check password
	if !h.authService.IsAuthorized(userID) {
		if h.authService.CheckPassword(text) {
			h.authService.AuthorizeUser(userID)

			h.logger.Info("User authorized", zap.Int64("user_id", userID))
			h.ResetState(userID)
			return c.Send("✅ Access granted!\n\n"+mainMenuText, mainMenuMarkup())
		}

		return c.Send("Wrong password")
	}

	// User is authorized, handle based on state
	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingFolderName:
		return h.createFolder(c, text)

	case domain.StateWaitingTranslation:
		return h.saveWord(c, state, state.CurrentWord, text)

	case domain.StateWaitingArticleURL:
		return h.withFolder(c, func(folder domain.Folder) error {
			return h.analyzeArticle(c, folder, text)
		})

	case domain.StateWaitingPinURL:
		return h.pinArticle(c, text)

	case domain.StateWaitingPhoto:
		return c.Send("Send a photo with words on it.", cancelMarkup())

	default:
		// Any text with a folder open starts word input
		if state.FolderID == "" {
			return c.Send("Open a folder first to add words.", mainMenuMarkup())
		}

		h.SetState(userID, &domain.StateData{
			State:       domain.StateWaitingTranslation,
			FolderID:    state.FolderID,
			CurrentWord: text,
		})

		return c.Send(fmt.Sprintf("Now send the translation of \"%s\"", text), translateMarkup())
	}
}

func translateMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("✨ Translate", uniqueTranslate),
		markup.Data("❌ Cancel", uniqueCancel),
	))
	return markup
}

func (h *Handler) createFolder(c tele.Context, name string) error {
	userID := c.Sender().ID

	folderID, err := h.vocabService.CreateFolder(userID, name)
	if err != nil {
		return h.fail(c, err)
	}

	h.SetState(userID, &domain.StateData{State: domain.StateIdle, FolderID: folderID})
	return h.withFolder(c, func(folder domain.Folder) error {
		return h.show(c, folderText(folder), folderMarkup(folder))
	})
}

func (h *Handler) saveWord(c tele.Context, state *domain.StateData, sourceTerm, translation string) error {
	userID := c.Sender().ID

	if err := h.vocabService.AddWord(userID, state.FolderID, sourceTerm, translation); err != nil {
		return h.fail(c, err)
	}

	h.logger.Info("Word pair saved",
		zap.Int64("user_id", userID),
		zap.String("folder_id", state.FolderID),
	)

	// Wait for the next word in the same folder
	h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord, FolderID: state.FolderID})

	text := fmt.Sprintf("✅ Saved: %s — %s\n\nSend the next word or go back to the folder.",
		strings.TrimSpace(sourceTerm), strings.TrimSpace(translation))
	return c.Send(text, backToFolderMarkup())
}

func (h *Handler) analyzeArticle(c tele.Context, folder domain.Folder, rawURL string) error {
	userID := c.Sender().ID

	ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
	defer cancel()

	if c.Callback() != nil {
		_ = c.Edit("⏳ Analyzing article…")
	} else {
		_ = c.Send("⏳ Analyzing article…")
	}

	suggestions, err := h.assistant.AnalyzeArticle(ctx, userID, rawURL)
	if err != nil {
		return h.fail(c, err)
	}

	h.SetState(userID, &domain.StateData{State: domain.StateIdle, FolderID: folder.ID})
	return h.showNotice(c, "Article analyzed!", suggestionsText(suggestions), suggestionsMarkup(suggestions))
}

func (h *Handler) pinArticle(c tele.Context, rawURL string) error {
	userID := c.Sender().ID

	if _, err := h.assistant.PinArticle(userID, rawURL); err != nil {
		return h.fail(c, err)
	}

	h.enterState(userID, domain.StateIdle)
	return h.withFolder(c, func(folder domain.Folder) error {
		return h.showImport(c, folder, "Article pinned!")
	})
}

// handlePhoto runs word detection on any photo sent while a folder is open
func (h *Handler) handlePhoto(c tele.Context) error {
	userID := c.Sender().ID

	if h.GetState(userID).FolderID == "" {
		return c.Send("Open a folder first, then send a photo.", mainMenuMarkup())
	}

	return h.withFolder(c, func(folder domain.Folder) error {
		ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
		defer cancel()

		suggestions, err := h.assistant.DetectWords(ctx, userID)
		if err != nil {
			return h.fail(c, err)
		}

		h.SetState(userID, &domain.StateData{State: domain.StateIdle, FolderID: folder.ID})
		return c.Send("📷 Words detected!\n\n"+suggestionsText(suggestions), suggestionsMarkup(suggestions)())
	})
}

// userMessages maps errors to texts shown to the user
var userMessages = []struct {
	err  error
	text string
}{
	{domain.ErrEmptyFolderName, "Folder name cannot be empty. Send a name:"},
	{domain.ErrEmptyWord, "Word and translation cannot be empty."},
	{domain.ErrFolderNotFound, "This folder no longer exists."},
	{domain.ErrNoActiveQuiz, "The test has ended."},
	{domain.ErrEmptyURL, "Please enter a URL."},
	{domain.ErrInvalidURL, "Please enter a valid URL."},
	{domain.ErrNothingSelected, "Please select at least one word."},
	{domain.ErrNothingToTranslate, "Nothing to translate."},
	{context.DeadlineExceeded, "The assistant took too long. Try again."},
}

func userMessage(err error) (string, bool) {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.text, true
		}
	}
	return "", false
}

// fail reports err to the user. Unknown errors are logged.
func (h *Handler) fail(c tele.Context, err error) error {
	text, known := userMessage(err)
	if !known {
		h.logger.Error("Request failed", zap.Error(err), zap.Int64("user_id", c.Sender().ID))
		text = errorText
	}
	return h.alert(c, text)
}

// alert shows text as a callback popup or as a message
func (h *Handler) alert(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
