package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"wordfolder/internal/domain"
	"wordfolder/internal/repository"
	"wordfolder/internal/workspace"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// Canned results of the simulated article analysis and photo detection
var (
	articleWords = []domain.WordPair{
		{SourceTerm: "utdanning", Translation: "education"},
		{SourceTerm: "forskning", Translation: "research"},
		{SourceTerm: "teknologi", Translation: "technology"},
		{SourceTerm: "innovasjon", Translation: "innovation"},
		{SourceTerm: "samfunn", Translation: "society"},
		{SourceTerm: "utvikle", Translation: "develop"},
		{SourceTerm: "miljø", Translation: "environment"},
		{SourceTerm: "bærekraft", Translation: "sustainability"},
	}
	photoWords = []domain.WordPair{
		{SourceTerm: "hund", Translation: "dog"},
		{SourceTerm: "katt", Translation: "cat"},
		{SourceTerm: "bil", Translation: "car"},
		{SourceTerm: "hus", Translation: "house"},
		{SourceTerm: "tre", Translation: "tree"},
		{SourceTerm: "blomst", Translation: "flower"},
	}
)

// AssistantDelays are the simulated latencies of the mock assistant
type AssistantDelays struct {
	Translate time.Duration
	Analyze   time.Duration
	Detect    time.Duration
}

// AssistantService provides mock translation, article analysis and photo
// word detection, plus the pinned article list
type AssistantService struct {
	repo   repository.WorkspaceRepository
	delays AssistantDelays
	logger *zap.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(
	repo repository.WorkspaceRepository,
	delays AssistantDelays,
	logger *zap.Logger,
) *AssistantService {
	return &AssistantService{
		repo:   repo,
		delays: delays,
		logger: logger,
	}
}

// Translate fills the missing side of a pair. Exactly one side must be set.
func (s *AssistantService) Translate(ctx context.Context, sourceTerm, translation string) (domain.WordPair, error) {
	sourceTerm = strings.TrimSpace(sourceTerm)
	translation = strings.TrimSpace(translation)
	if (sourceTerm == "") == (translation == "") {
		return domain.WordPair{}, domain.ErrNothingToTranslate
	}

	if err := wait(ctx, s.delays.Translate); err != nil {
		return domain.WordPair{}, err
	}

	// Mock: the known side is echoed
	if sourceTerm == "" {
		sourceTerm = translation
	} else {
		translation = sourceTerm
	}
	return domain.WordPair{SourceTerm: sourceTerm, Translation: translation}, nil
}

// AnalyzeArticle suggests words from the article at rawURL
func (s *AssistantService) AnalyzeArticle(ctx context.Context, userID int64, rawURL string) ([]domain.Suggestion, error) {
	if _, err := parseArticleURL(rawURL); err != nil {
		return nil, err
	}

	if err := wait(ctx, s.delays.Analyze); err != nil {
		return nil, err
	}

	s.logger.Info("Article analyzed", zap.Int64("user_id", userID), zap.String("url", strings.TrimSpace(rawURL)))
	return s.suggest(userID, articleWords)
}

// DetectWords suggests words found on a photo
func (s *AssistantService) DetectWords(ctx context.Context, userID int64) ([]domain.Suggestion, error) {
	if err := wait(ctx, s.delays.Detect); err != nil {
		return nil, err
	}

	s.logger.Info("Words detected", zap.Int64("user_id", userID))
	return s.suggest(userID, photoWords)
}

func (s *AssistantService) suggest(userID int64, pairs []domain.WordPair) ([]domain.Suggestion, error) {
	suggestions := make([]domain.Suggestion, len(pairs))
	for i, p := range pairs {
		suggestions[i] = domain.Suggestion{WordPair: p}
	}

	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		ws.Suggestions = suggestions
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cloneSuggestions(suggestions), nil
}

// Suggestions returns the pending suggestions of the user
func (s *AssistantService) Suggestions(userID int64) ([]domain.Suggestion, error) {
	var suggestions []domain.Suggestion
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		suggestions = cloneSuggestions(ws.Suggestions)
		return nil
	})
	return suggestions, err
}

// ToggleSuggestion flips the selection of one suggestion. Out of range
// indexes are ignored.
func (s *AssistantService) ToggleSuggestion(userID int64, index int) ([]domain.Suggestion, error) {
	var suggestions []domain.Suggestion
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		if index >= 0 && index < len(ws.Suggestions) {
			ws.Suggestions[index].Selected = !ws.Suggestions[index].Selected
		}
		suggestions = cloneSuggestions(ws.Suggestions)
		return nil
	})
	return suggestions, err
}

// ClearSuggestions drops pending suggestions
func (s *AssistantService) ClearSuggestions(userID int64) error {
	return s.repo.With(userID, func(ws *workspace.Workspace) error {
		ws.Suggestions = nil
		return nil
	})
}

// AddSelected adds the selected suggestions to a folder and returns how many
// were added
func (s *AssistantService) AddSelected(userID int64, folderID string) (int, error) {
	var pairs []domain.WordPair
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		pairs = domain.SelectedPairs(ws.Suggestions)
		if len(pairs) == 0 {
			return domain.ErrNothingSelected
		}
		if err := ws.Store.AddWords(folderID, pairs); err != nil {
			return err
		}
		ws.Suggestions = nil
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Suggested words added",
		zap.Int64("user_id", userID),
		zap.String("folder_id", folderID),
		zap.Int("count", len(pairs)),
	)
	return len(pairs), nil
}

// PinArticle saves an article URL for later
func (s *AssistantService) PinArticle(userID int64, rawURL string) (domain.PinnedArticle, error) {
	u, err := parseArticleURL(rawURL)
	if err != nil {
		return domain.PinnedArticle{}, err
	}

	// Short public id, it travels in callback data
	id, err := gonanoid.New()
	if err != nil {
		return domain.PinnedArticle{}, fmt.Errorf("generate article id: %w", err)
	}

	article := domain.PinnedArticle{
		ID:    id,
		URL:   u.String(),
		Title: u.Hostname(),
	}
	err = s.repo.With(userID, func(ws *workspace.Workspace) error {
		ws.Pinned = append(ws.Pinned, article)
		return nil
	})
	if err != nil {
		return domain.PinnedArticle{}, err
	}
	return article, nil
}

// UnpinArticle removes a pinned article. Unknown ids are ignored.
func (s *AssistantService) UnpinArticle(userID int64, articleID string) error {
	return s.repo.With(userID, func(ws *workspace.Workspace) error {
		for i, a := range ws.Pinned {
			if a.ID == articleID {
				ws.Pinned = append(ws.Pinned[:i:i], ws.Pinned[i+1:]...)
				return nil
			}
		}
		return nil
	})
}

// PinnedArticles returns the pinned articles in pin order
func (s *AssistantService) PinnedArticles(userID int64) ([]domain.PinnedArticle, error) {
	var pinned []domain.PinnedArticle
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		pinned = append([]domain.PinnedArticle(nil), ws.Pinned...)
		return nil
	})
	return pinned, err
}

// PinnedArticle returns one pinned article
func (s *AssistantService) PinnedArticle(userID int64, articleID string) (domain.PinnedArticle, bool, error) {
	pinned, err := s.PinnedArticles(userID)
	if err != nil {
		return domain.PinnedArticle{}, false, err
	}
	for _, a := range pinned {
		if a.ID == articleID {
			return a, true, nil
		}
	}
	return domain.PinnedArticle{}, false, nil
}

func parseArticleURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, domain.ErrEmptyURL
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, domain.ErrInvalidURL
	}
	return u, nil
}

func cloneSuggestions(suggestions []domain.Suggestion) []domain.Suggestion {
	if suggestions == nil {
		return nil
	}
	out := make([]domain.Suggestion, len(suggestions))
	copy(out, suggestions)
	return out
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
