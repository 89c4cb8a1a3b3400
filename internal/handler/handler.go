package handler

import (
	"sync"

	"wordfolder/internal/domain"
	"wordfolder/internal/middleware"
	"wordfolder/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	authService  *service.AuthService
	vocabService *service.VocabularyService
	quizService  *service.QuizService
	statsService *service.StatsService
	assistant    *service.AssistantService
	logger       *zap.Logger

	// Callback routes by button unique
	routes map[string]tele.HandlerFunc

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	vocabService *service.VocabularyService,
	quizService *service.QuizService,
	statsService *service.StatsService,
	assistant *service.AssistantService,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		bot:          bot,
		authService:  authService,
		vocabService: vocabService,
		quizService:  quizService,
		statsService: statsService,
		assistant:    assistant,
		logger:       logger,
		states:       make(map[int64]*domain.StateData),
	}
	h.routes = h.callbackRoutes()
	return h
}

func (h *Handler) callbackRoutes() map[string]tele.HandlerFunc {
	return map[string]tele.HandlerFunc{
		uniqueMainMenu:     h.handleStart,
		uniqueFolders:      h.handleFolders,
		uniqueNewFolder:    h.handleNewFolder,
		uniqueStats:        h.handleStats,
		uniqueCancel:       h.handleCancel,
		uniqueOpenFolder:   h.handleOpenFolder,
		uniqueBackToFolder: h.handleBackToFolder,
		uniqueAddWord:      h.handleAddWord,
		uniqueTranslate:    h.handleTranslate,
		uniqueRemoveMenu:   h.handleRemoveMenu,
		uniqueRemoveWord:   h.handleRemoveWord,
		uniqueDeleteFolder: h.handleDeleteFolder,
		uniqueConfirmDel:   h.handleConfirmDelete,
		uniqueStartTest:    h.handleStartTest,
		uniqueReveal:       h.handleReveal,
		uniqueCorrect:      h.handleCorrect,
		uniqueIncorrect:    h.handleIncorrect,
		uniqueRestart:      h.handleRestart,
		uniqueExitTest:     h.handleExitTest,
		uniqueImport:       h.handleImport,
		uniqueAnalyzeURL:   h.handleAnalyzeURL,
		uniquePinArticle:   h.handlePinArticle,
		uniqueAnalyzePin:   h.handleAnalyzePin,
		uniqueUnpin:        h.handleUnpin,
		uniqueScanPhoto:    h.handleScanPhoto,
		uniqueToggle:       h.handleToggle,
		uniqueAddSelected:  h.handleAddSelected,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	auth := middleware.AuthMiddleware(h.authService, h.logger)

	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages and photos
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnPhoto, h.handlePhoto, auth)

	// Callback queries (inline buttons)
	for unique, fn := range h.routes {
		h.bot.Handle(&tele.Btn{Unique: unique}, fn, auth)
	}

	// Generic callback handler for buttons that did not match a route
	h.bot.Handle(tele.OnCallback, h.handleCallback, auth)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	copied := *state
	return &copied
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state, forgetting the open folder
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// enterState switches state and keeps the open folder
func (h *Handler) enterState(userID int64, state domain.UserState) {
	current := h.GetState(userID)
	h.SetState(userID, &domain.StateData{State: state, FolderID: current.FolderID})
}
