package middleware

import (
	"wordfolder/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// PasswordPrompt is sent to users that have not entered the bot password
const PasswordPrompt = "👋 Hi! This bot is private. Send the password to continue:"

// AuthMiddleware creates authentication middleware
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			// Ensure user exists
			authService.EnsureUserExists(userID)

			// If not authorized and not /start command, prompt for password
			if !authService.IsAuthorized(userID) && c.Text() != "/start" {
				logger.Debug("Rejected unauthorized update", zap.Int64("user_id", userID))

				// Buttons from before a restart still reach us
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "Send the password first.", ShowAlert: true})
				}
				return c.Send(PasswordPrompt)
			}

			// User is authorized or using /start, continue
			return next(c)
		}
	}
}
