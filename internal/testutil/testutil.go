package testutil

import (
	"testing"

	"wordfolder/internal/domain"
	"wordfolder/internal/workspace"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test word
func NewTestWord(id, sourceTerm, translation string) domain.Word {
	return domain.Word{
		ID:          id,
		SourceTerm:  sourceTerm,
		Translation: translation,
	}
}

// NewTestWorkspace creates a workspace holding one folder with the given pairs
// and returns it with the folder id
func NewTestWorkspace(t *testing.T, userID int64, folderName string, pairs ...domain.WordPair) (*workspace.Workspace, string) {
	t.Helper()

	ws := workspace.New(userID)
	folderID, err := ws.Store.CreateFolder(folderName)
	require.NoError(t, err)
	require.NoError(t, ws.Store.AddWords(folderID, pairs))
	return ws, folderID
}
