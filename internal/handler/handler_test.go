package handler

import (
	"errors"
	"testing"

	"wordfolder/internal/domain"
	"wordfolder/internal/middleware"
	"wordfolder/internal/repository/memory"
	"wordfolder/internal/service"
	"wordfolder/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID int64 = 1

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	logger := testutil.NewTestLogger()
	workspaces := memory.NewWorkspaceRepo()
	authService := service.NewAuthService(memory.NewUserRepo(), "secret")
	authService.AuthorizeUser(testUserID)

	return NewHandler(
		nil,
		authService,
		service.NewVocabularyService(workspaces, logger),
		service.NewQuizService(workspaces, logger),
		service.NewStatsService(workspaces, logger),
		service.NewAssistantService(workspaces, service.AssistantDelays{}, logger),
		logger,
	)
}

// openFolder creates a folder with pairs and makes it the open one
func openFolder(t *testing.T, h *Handler, name string, pairs ...domain.WordPair) string {
	t.Helper()

	folderID, err := h.vocabService.CreateFolder(testUserID, name)
	require.NoError(t, err)
	require.NoError(t, h.vocabService.AddWords(testUserID, folderID, pairs))
	h.SetState(testUserID, &domain.StateData{State: domain.StateIdle, FolderID: folderID})
	return folderID
}

func TestHandler_Password(t *testing.T) {
	h := newTestHandler(t)

	start := testutil.NewFakeContext(2, "/start")
	require.NoError(t, h.handleStart(start))
	assert.Equal(t, middleware.PasswordPrompt, start.Last().Text)

	wrong := testutil.NewFakeContext(2, "guess")
	require.NoError(t, h.handleText(wrong))
	assert.Equal(t, "Wrong password", wrong.Last().Text)

	right := testutil.NewFakeContext(2, " secret ")
	require.NoError(t, h.handleText(right))
	assert.Contains(t, right.Last().Text, "Access granted")
	assert.True(t, h.authService.IsAuthorized(2))
}

func TestHandler_CreateFolderAndAddWords(t *testing.T) {
	h := newTestHandler(t)

	require.NoError(t, h.handleNewFolder(testutil.NewFakeCallback(testUserID, uniqueNewFolder, "")))
	assert.Equal(t, domain.StateWaitingFolderName, h.GetState(testUserID).State)

	blank := testutil.NewFakeContext(testUserID, "   ")
	require.NoError(t, h.handleText(blank))
	assert.Contains(t, blank.Last().Text, "Folder name cannot be empty")

	name := testutil.NewFakeContext(testUserID, "Animals")
	require.NoError(t, h.handleText(name))
	assert.Contains(t, name.Last().Text, "📂 Animals · 0 words")
	folderID := h.GetState(testUserID).FolderID
	require.NotEmpty(t, folderID)

	word := testutil.NewFakeContext(testUserID, "hund")
	require.NoError(t, h.handleText(word))
	assert.Equal(t, domain.StateWaitingTranslation, h.GetState(testUserID).State)
	assert.Equal(t, "hund", h.GetState(testUserID).CurrentWord)

	translation := testutil.NewFakeContext(testUserID, "dog")
	require.NoError(t, h.handleText(translation))
	assert.Contains(t, translation.Last().Text, "Saved: hund — dog")
	assert.Equal(t, domain.StateWaitingWord, h.GetState(testUserID).State)

	require.NoError(t, h.handleText(testutil.NewFakeContext(testUserID, "katt")))
	require.NoError(t, h.handleTranslate(testutil.NewFakeCallback(testUserID, uniqueTranslate, "")))

	folder, err := h.vocabService.GetFolder(testUserID, folderID)
	require.NoError(t, err)
	assert.Equal(t, []domain.WordPair{
		{SourceTerm: "hund", Translation: "dog"},
		{SourceTerm: "katt", Translation: "katt"},
	}, folder.Pairs())
}

func TestHandler_TextWithoutFolder(t *testing.T) {
	h := newTestHandler(t)

	c := testutil.NewFakeContext(testUserID, "hund")
	require.NoError(t, h.handleText(c))

	assert.Contains(t, c.Last().Text, "Open a folder first")
	assert.Equal(t, domain.StateIdle, h.GetState(testUserID).State)
}

func TestHandler_QuizFlow(t *testing.T) {
	h := newTestHandler(t)
	folderID := openFolder(t, h, "Animals", domain.WordPair{SourceTerm: "hund", Translation: "dog"})

	start := testutil.NewFakeCallback(testUserID, uniqueStartTest, folderID)
	require.NoError(t, h.handleStartTest(start))
	assert.Contains(t, start.Last().Text, "word 1 of 1")
	assert.NotContains(t, start.Last().Text, "dog")

	reveal := testutil.NewFakeCallback(testUserID, uniqueReveal, "")
	require.NoError(t, h.handleReveal(reveal))
	assert.Contains(t, reveal.Last().Text, "dog")

	correct := testutil.NewFakeCallback(testUserID, uniqueCorrect, "")
	require.NoError(t, h.handleCorrect(correct))
	assert.Contains(t, correct.Last().Text, "Accuracy: 100%")

	// Second press of an old button changes nothing
	stale := testutil.NewFakeCallback(testUserID, uniqueCorrect, "")
	require.NoError(t, h.handleCorrect(stale))
	assert.Empty(t, stale.Edited)
	require.Len(t, stale.Answered, 1)
	assert.False(t, stale.Answered[0].ShowAlert)

	restart := testutil.NewFakeCallback(testUserID, uniqueRestart, "")
	require.NoError(t, h.handleRestart(restart))
	assert.Contains(t, restart.Last().Text, "word 1 of 1")

	exit := testutil.NewFakeCallback(testUserID, uniqueExitTest, "")
	require.NoError(t, h.handleExitTest(exit))
	assert.Contains(t, exit.Last().Text, "📂 Animals")

	ended := testutil.NewFakeCallback(testUserID, uniqueReveal, "")
	require.NoError(t, h.handleReveal(ended))
	require.Len(t, ended.Answered, 1)
	assert.Equal(t, "The test has ended", ended.Answered[0].Text)
}

func TestHandler_StartTestEmptyFolder(t *testing.T) {
	h := newTestHandler(t)
	folderID := openFolder(t, h, "Empty")

	c := testutil.NewFakeCallback(testUserID, uniqueStartTest, folderID)
	require.NoError(t, h.handleStartTest(c))

	assert.Contains(t, c.Last().Text, "No words available")
}

func TestHandler_FolderDeletedWhileOpen(t *testing.T) {
	h := newTestHandler(t)
	folderID := openFolder(t, h, "Animals")
	require.NoError(t, h.vocabService.DeleteFolder(testUserID, folderID))

	c := testutil.NewFakeCallback(testUserID, uniqueAddWord, "")
	require.NoError(t, h.handleAddWord(c))

	assert.Contains(t, c.Last().Text, "No folders yet")
	require.Len(t, c.Answered, 1)
	assert.Equal(t, "This folder no longer exists", c.Answered[0].Text)
	assert.Empty(t, h.GetState(testUserID).FolderID)
}

func TestHandler_RemoveAndDelete(t *testing.T) {
	h := newTestHandler(t)
	folderID := openFolder(t, h, "Animals", domain.WordPair{SourceTerm: "hund", Translation: "dog"})
	folder, err := h.vocabService.GetFolder(testUserID, folderID)
	require.NoError(t, err)

	remove := testutil.NewFakeCallback(testUserID, uniqueRemoveWord, folder.Words[0].ID)
	require.NoError(t, h.handleRemoveWord(remove))
	assert.Contains(t, remove.Last().Text, "0 words")

	del := testutil.NewFakeCallback(testUserID, uniqueConfirmDel, folderID)
	require.NoError(t, h.handleConfirmDelete(del))
	assert.Contains(t, del.Last().Text, "No folders yet")

	folders, err := h.vocabService.ListFolders(testUserID)
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestHandler_PhotoSuggestions(t *testing.T) {
	h := newTestHandler(t)
	folderID := openFolder(t, h, "Animals")

	photo := testutil.NewFakeContext(testUserID, "")
	require.NoError(t, h.handlePhoto(photo))
	assert.Contains(t, photo.Last().Text, "Words detected")

	nothing := testutil.NewFakeCallback(testUserID, uniqueAddSelected, "")
	require.NoError(t, h.handleAddSelected(nothing))
	require.Len(t, nothing.Answered, 1)
	assert.True(t, nothing.Answered[0].ShowAlert)

	toggle := testutil.NewFakeCallback(testUserID, uniqueToggle, "0")
	require.NoError(t, h.handleToggle(toggle))
	assert.Contains(t, toggle.Last().Text, "1 selected")

	add := testutil.NewFakeCallback(testUserID, uniqueAddSelected, "")
	require.NoError(t, h.handleAddSelected(add))
	require.Len(t, add.Answered, 1)
	assert.Equal(t, "Added 1 word to Animals", add.Answered[0].Text)

	folder, err := h.vocabService.GetFolder(testUserID, folderID)
	require.NoError(t, err)
	assert.Len(t, folder.Words, 1)
}

func TestHandler_PinAndAnalyze(t *testing.T) {
	h := newTestHandler(t)
	openFolder(t, h, "News")

	require.NoError(t, h.handlePinArticle(testutil.NewFakeCallback(testUserID, uniquePinArticle, "")))
	assert.Equal(t, domain.StateWaitingPinURL, h.GetState(testUserID).State)

	bad := testutil.NewFakeContext(testUserID, "nrk")
	require.NoError(t, h.handleText(bad))
	assert.Contains(t, bad.Last().Text, "valid URL")

	pin := testutil.NewFakeContext(testUserID, "https://www.nrk.no/kultur/")
	require.NoError(t, h.handleText(pin))
	assert.Contains(t, pin.Last().Text, "www.nrk.no")

	pinned, err := h.assistant.PinnedArticles(testUserID)
	require.NoError(t, err)
	require.Len(t, pinned, 1)

	analyze := testutil.NewFakeCallback(testUserID, uniqueAnalyzePin, pinned[0].ID)
	require.NoError(t, h.handleAnalyzePin(analyze))
	assert.Contains(t, analyze.Last().Text, "Suggested words")

	unpin := testutil.NewFakeCallback(testUserID, uniqueUnpin, pinned[0].ID)
	require.NoError(t, h.handleUnpin(unpin))
	assert.Contains(t, unpin.Last().Text, "No pinned articles")

	gone := testutil.NewFakeCallback(testUserID, uniqueAnalyzePin, pinned[0].ID)
	require.NoError(t, h.handleAnalyzePin(gone))
	require.Len(t, gone.Answered, 1)
	assert.True(t, gone.Answered[0].ShowAlert)
}

func TestHandler_CallbackFallback(t *testing.T) {
	h := newTestHandler(t)

	c := testutil.NewFakeCallback(testUserID, "", "\fstats|")
	require.NoError(t, h.handleCallback(c))
	assert.Contains(t, c.Last().Text, "Statistics")

	unknown := testutil.NewFakeCallback(testUserID, "", "\fnope|")
	require.NoError(t, h.handleCallback(unknown))
	assert.Len(t, unknown.Answered, 1)
	assert.Empty(t, unknown.Sent)
}

func TestHandler_EditErrors(t *testing.T) {
	h := newTestHandler(t)

	same := testutil.NewFakeCallback(testUserID, uniqueStats, "")
	same.EditErr = errors.New("telegram: message is not modified (400)")
	require.NoError(t, h.handleStats(same))
	assert.Empty(t, same.Sent)
	assert.Len(t, same.Answered, 1)

	gone := testutil.NewFakeCallback(testUserID, uniqueStats, "")
	gone.EditErr = errors.New("telegram: message to edit not found (400)")
	require.NoError(t, h.handleStats(gone))
	require.Len(t, gone.Sent, 1)
	assert.Contains(t, gone.Sent[0].Text, "Statistics")
	assert.NotNil(t, gone.Sent[0].Markup)
}
