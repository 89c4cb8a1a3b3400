package middleware

import (
	"testing"

	"wordfolder/internal/repository/memory"
	"wordfolder/internal/service"
	"wordfolder/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func TestAuthMiddleware(t *testing.T) {
	authService := service.NewAuthService(memory.NewUserRepo(), "secret")
	authService.AuthorizeUser(1)

	tests := []struct {
		name       string
		ctx        *testutil.FakeContext
		expectNext bool
	}{
		{
			name:       "authorized user",
			ctx:        testutil.NewFakeContext(1, "hello"),
			expectNext: true,
		},
		{
			name:       "unauthorized start command",
			ctx:        testutil.NewFakeContext(2, "/start"),
			expectNext: true,
		},
		{
			name: "unauthorized message",
			ctx:  testutil.NewFakeContext(2, "hello"),
		},
		{
			name: "unauthorized callback",
			ctx:  testutil.NewFakeCallback(2, "folders", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := func(c tele.Context) error {
				called = true
				return nil
			}

			err := AuthMiddleware(authService, testutil.NewTestLogger())(next)(tt.ctx)

			require.NoError(t, err)
			assert.Equal(t, tt.expectNext, called)
			if tt.expectNext {
				return
			}
			if tt.ctx.Press != nil {
				require.Len(t, tt.ctx.Answered, 1)
				assert.True(t, tt.ctx.Answered[0].ShowAlert)
				assert.Empty(t, tt.ctx.Sent)
			} else {
				require.Len(t, tt.ctx.Sent, 1)
				assert.Equal(t, PasswordPrompt, tt.ctx.Sent[0].Text)
			}
		})
	}
}
