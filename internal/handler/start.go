package handler

import (
	"wordfolder/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command and the main menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.authService.EnsureUserExists(userID)
	h.ResetState(userID)

	if !h.authService.IsAuthorized(userID) {
		return c.Send(middleware.PasswordPrompt)
	}

	return h.show(c, mainMenuText, mainMenuMarkup)
}
