package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"wordfolder/internal/domain"
	"wordfolder/internal/quiz"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// splitCallbackData splits raw "\f<unique>|<payload>" data
func splitCallbackData(data string) (unique, payload string) {
	data = cleanCallbackData(data)
	unique, payload, _ = strings.Cut(data, "|")
	return unique, payload
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Same content means another callback already rendered it
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// show edits the callback message, or sends a new one for commands and text
func (h *Handler) show(c tele.Context, text string, markup markupFunc) error {
	return h.showNotice(c, "", text, markup)
}

// showNotice is show with a short toast on callbacks
func (h *Handler) showNotice(c tele.Context, notice, text string, markup markupFunc) error {
	if c.Callback() == nil {
		return c.Send(text, markup())
	}

	if err := c.Edit(text, markup()); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		// Fresh markup, the first one was already prepared for sending
		return c.Send(text, markup())
	}

	if notice != "" {
		return c.Respond(&tele.CallbackResponse{Text: notice})
	}
	return c.Respond()
}

// withFolder runs fn with the folder the user has open. A folder that no
// longer exists sends the user back to the folder list.
func (h *Handler) withFolder(c tele.Context, fn func(folder domain.Folder) error) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	folder, err := h.vocabService.GetFolder(userID, state.FolderID)
	if errors.Is(err, domain.ErrFolderNotFound) {
		h.ResetState(userID)
		folders, listErr := h.vocabService.ListFolders(userID)
		if listErr != nil {
			return h.fail(c, listErr)
		}
		return h.showNotice(c, "This folder no longer exists", foldersText(folders), foldersMarkup(folders))
	}
	if err != nil {
		return h.fail(c, err)
	}
	return fn(folder)
}

func (h *Handler) showFolder(c tele.Context, folder domain.Folder, notice string) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateIdle, FolderID: folder.ID})
	return h.showNotice(c, notice, folderText(folder), folderMarkup(folder))
}

func (h *Handler) showImport(c tele.Context, folder domain.Folder, notice string) error {
	pinned, err := h.assistant.PinnedArticles(c.Sender().ID)
	if err != nil {
		return h.fail(c, err)
	}
	return h.showNotice(c, notice, importText(folder.Name, pinned), importMarkup(pinned))
}

// handleCallback handles callbacks that did not match a registered button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	unique, payload := splitCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("unique", unique),
		zap.String("payload", payload),
		zap.Int64("user_id", c.Sender().ID),
	)

	if fn, ok := h.routes[unique]; ok {
		callback.Unique = unique
		callback.Data = payload
		return fn(c)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", callback.Data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleFolders shows the folder list
func (h *Handler) handleFolders(c tele.Context) error {
	userID := c.Sender().ID
	h.ResetState(userID)

	folders, err := h.vocabService.ListFolders(userID)
	if err != nil {
		return h.fail(c, err)
	}
	return h.show(c, foldersText(folders), foldersMarkup(folders))
}

// handleNewFolder asks for a folder name
func (h *Handler) handleNewFolder(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingFolderName})
	return h.show(c, "📁 Send a name for the new folder:", cancelMarkup)
}

// handleStats shows vocabulary statistics
func (h *Handler) handleStats(c tele.Context) error {
	stats, err := h.statsService.Summary(c.Sender().ID)
	if err != nil {
		return h.fail(c, err)
	}
	return h.show(c, statsText(stats), statsMarkup)
}

// handleCancel cancels current input and returns to the open folder or menu
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	if h.GetState(userID).FolderID == "" {
		h.ResetState(userID)
		return h.show(c, mainMenuText, mainMenuMarkup)
	}
	return h.withFolder(c, func(folder domain.Folder) error {
		return h.showFolder(c, folder, "")
	})
}

// handleOpenFolder opens the folder from the button payload
func (h *Handler) handleOpenFolder(c tele.Context) error {
	userID := c.Sender().ID
	h.SetState(userID, &domain.StateData{State: domain.StateIdle, FolderID: c.Callback().Data})

	return h.withFolder(c, func(folder domain.Folder) error {
		return h.showFolder(c, folder, "")
	})
}

// handleBackToFolder returns to the open folder and drops pending suggestions
func (h *Handler) handleBackToFolder(c tele.Context) error {
	if err := h.assistant.ClearSuggestions(c.Sender().ID); err != nil {
		return h.fail(c, err)
	}
	return h.withFolder(c, func(folder domain.Folder) error {
		return h.showFolder(c, folder, "")
	})
}

// handleAddWord starts word input
func (h *Handler) handleAddWord(c tele.Context) error {
	return h.withFolder(c, func(folder domain.Folder) error {
		h.enterState(c.Sender().ID, domain.StateWaitingWord)
		return h.show(c, "➕ Send the word to add to "+folder.Name+":", cancelMarkup)
	})
}

// handleTranslate fills the translation of the pending word with the assistant
func (h *Handler) handleTranslate(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)
	if state.State != domain.StateWaitingTranslation {
		return c.Respond()
	}

	ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
	defer cancel()

	pair, err := h.assistant.Translate(ctx, state.CurrentWord, "")
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.saveWord(c, state, pair.SourceTerm, pair.Translation); err != nil {
		return err
	}
	return c.Respond()
}

// handleRemoveMenu lists words with remove buttons
func (h *Handler) handleRemoveMenu(c tele.Context) error {
	return h.withFolder(c, func(folder domain.Folder) error {
		return h.show(c, "✖️ Tap a word to remove it from "+folder.Name+":", removeWordsMarkup(folder))
	})
}

// handleRemoveWord removes the word from the button payload
func (h *Handler) handleRemoveWord(c tele.Context) error {
	userID := c.Sender().ID
	wordID := c.Callback().Data

	return h.withFolder(c, func(folder domain.Folder) error {
		if err := h.vocabService.RemoveWord(userID, folder.ID, wordID); err != nil {
			return h.fail(c, err)
		}

		folder, err := h.vocabService.GetFolder(userID, folder.ID)
		if err != nil {
			return h.fail(c, err)
		}
		if len(folder.Words) == 0 {
			return h.showFolder(c, folder, "Word removed")
		}
		return h.showNotice(c, "Word removed", "✖️ Tap a word to remove it from "+folder.Name+":", removeWordsMarkup(folder))
	})
}

// handleDeleteFolder asks to confirm deletion
func (h *Handler) handleDeleteFolder(c tele.Context) error {
	return h.withFolder(c, func(folder domain.Folder) error {
		return h.show(c, confirmDeleteText(folder), confirmDeleteMarkup(folder))
	})
}

// handleConfirmDelete deletes the folder from the button payload
func (h *Handler) handleConfirmDelete(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.vocabService.DeleteFolder(userID, c.Callback().Data); err != nil {
		return h.fail(c, err)
	}
	h.ResetState(userID)

	folders, err := h.vocabService.ListFolders(userID)
	if err != nil {
		return h.fail(c, err)
	}
	return h.showNotice(c, "Folder deleted", foldersText(folders), foldersMarkup(folders))
}

// handleStartTest starts test mode for the folder from the button payload
func (h *Handler) handleStartTest(c tele.Context) error {
	userID := c.Sender().ID
	folderID := c.Callback().Data

	view, err := h.quizService.Start(userID, folderID)
	if err != nil {
		return h.fail(c, err)
	}

	h.SetState(userID, &domain.StateData{State: domain.StateIdle, FolderID: folderID})
	return h.show(c, quizText(view), quizMarkup(view))
}

func (h *Handler) handleReveal(c tele.Context) error {
	return h.quizStep(c, h.quizService.Reveal)
}

func (h *Handler) handleCorrect(c tele.Context) error {
	return h.quizStep(c, h.quizService.MarkCorrect)
}

func (h *Handler) handleIncorrect(c tele.Context) error {
	return h.quizStep(c, h.quizService.MarkIncorrect)
}

func (h *Handler) handleRestart(c tele.Context) error {
	return h.quizStep(c, h.quizService.Restart)
}

func (h *Handler) quizStep(c tele.Context, step func(userID int64) (domain.QuizView, error)) error {
	userID := c.Sender().ID

	view, err := step(userID)
	switch {
	case errors.Is(err, quiz.ErrInvalidTransition):
		// Stale button from an earlier state of the test
		h.logger.Debug("Ignoring out of order quiz action", zap.Int64("user_id", userID))
		return c.Respond()
	case errors.Is(err, domain.ErrNoActiveQuiz):
		return h.withFolder(c, func(folder domain.Folder) error {
			return h.showFolder(c, folder, "The test has ended")
		})
	case err != nil:
		return h.fail(c, err)
	}

	return h.show(c, quizText(view), quizMarkup(view))
}

// handleExitTest leaves test mode
func (h *Handler) handleExitTest(c tele.Context) error {
	if err := h.quizService.Exit(c.Sender().ID); err != nil {
		return h.fail(c, err)
	}
	return h.withFolder(c, func(folder domain.Folder) error {
		return h.showFolder(c, folder, "")
	})
}

// handleImport shows the article import screen
func (h *Handler) handleImport(c tele.Context) error {
	return h.withFolder(c, func(folder domain.Folder) error {
		h.enterState(c.Sender().ID, domain.StateIdle)
		return h.showImport(c, folder, "")
	})
}

// handleAnalyzeURL asks for an article URL
func (h *Handler) handleAnalyzeURL(c tele.Context) error {
	return h.withFolder(c, func(folder domain.Folder) error {
		h.enterState(c.Sender().ID, domain.StateWaitingArticleURL)
		return h.show(c, "🔗 Send the article URL to analyze:", cancelMarkup)
	})
}

// handlePinArticle asks for a URL to pin
func (h *Handler) handlePinArticle(c tele.Context) error {
	return h.withFolder(c, func(folder domain.Folder) error {
		h.enterState(c.Sender().ID, domain.StateWaitingPinURL)
		return h.show(c, "📌 Send the article URL to pin:", cancelMarkup)
	})
}

// handleAnalyzePin analyzes the pinned article from the button payload
func (h *Handler) handleAnalyzePin(c tele.Context) error {
	userID := c.Sender().ID

	article, ok, err := h.assistant.PinnedArticle(userID, c.Callback().Data)
	if err != nil {
		return h.fail(c, err)
	}
	if !ok {
		return h.alert(c, "This article is no longer pinned.")
	}

	return h.withFolder(c, func(folder domain.Folder) error {
		return h.analyzeArticle(c, folder, article.URL)
	})
}

// handleUnpin removes the pinned article from the button payload
func (h *Handler) handleUnpin(c tele.Context) error {
	if err := h.assistant.UnpinArticle(c.Sender().ID, c.Callback().Data); err != nil {
		return h.fail(c, err)
	}
	return h.withFolder(c, func(folder domain.Folder) error {
		return h.showImport(c, folder, "Article unpinned")
	})
}

// handleScanPhoto asks for a photo
func (h *Handler) handleScanPhoto(c tele.Context) error {
	return h.withFolder(c, func(folder domain.Folder) error {
		h.enterState(c.Sender().ID, domain.StateWaitingPhoto)
		return h.show(c, "📷 Send a photo with words to add to "+folder.Name+":", cancelMarkup)
	})
}

// handleToggle flips selection of the suggestion from the button payload
func (h *Handler) handleToggle(c tele.Context) error {
	index, err := strconv.Atoi(c.Callback().Data)
	if err != nil {
		return c.Respond()
	}

	suggestions, err := h.assistant.ToggleSuggestion(c.Sender().ID, index)
	if err != nil {
		return h.fail(c, err)
	}
	return h.show(c, suggestionsText(suggestions), suggestionsMarkup(suggestions))
}

// handleAddSelected adds the selected suggestions to the open folder
func (h *Handler) handleAddSelected(c tele.Context) error {
	userID := c.Sender().ID

	return h.withFolder(c, func(folder domain.Folder) error {
		added, err := h.assistant.AddSelected(userID, folder.ID)
		if err != nil {
			return h.fail(c, err)
		}

		folder, err = h.vocabService.GetFolder(userID, folder.ID)
		if err != nil {
			return h.fail(c, err)
		}
		return h.showFolder(c, folder, addedText(added, folder.Name))
	})
}
