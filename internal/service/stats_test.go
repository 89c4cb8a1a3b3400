package service

import (
	"fmt"
	"testing"
	"time"

	"wordfolder/internal/domain"
	"wordfolder/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Summary(t *testing.T) {
	ws, folderID := testutil.NewTestWorkspace(t, 123, "Animals",
		domain.WordPair{SourceTerm: "hund", Translation: "dog"},
		domain.WordPair{SourceTerm: "katt", Translation: "cat"},
	)
	_, err := ws.Store.CreateFolder("Food")
	require.NoError(t, err)

	mockRepo := new(testutil.MockWorkspaceRepository)
	mockRepo.On("With", int64(123)).Return(ws, nil)

	service := NewStatsService(mockRepo, testutil.NewTestLogger())

	stats, err := service.Summary(123)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalFolders)
	assert.Equal(t, 2, stats.TotalWords)
	assert.Equal(t, 1, stats.AveragePerFolder)
	require.NotNil(t, stats.Largest)
	assert.Equal(t, folderID, stats.Largest.ID)
	assert.Equal(t, "Food", stats.Smallest.Name)
	mockRepo.AssertExpectations(t)
}

func TestStatsService_SummaryError(t *testing.T) {
	mockRepo := new(testutil.MockWorkspaceRepository)
	mockRepo.On("With", int64(123)).Return(nil, fmt.Errorf("registry error"))

	service := NewStatsService(mockRepo, testutil.NewTestLogger())

	_, err := service.Summary(123)

	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestStatsService_CleanupIdleSessions(t *testing.T) {
	tests := []struct {
		name     string
		ttl      time.Duration
		evicted  int
		remained int
	}{
		{
			name:     "nothing to evict",
			ttl:      time.Hour,
			evicted:  0,
			remained: 3,
		},
		{
			name:     "some sessions evicted",
			ttl:      24 * time.Hour,
			evicted:  2,
			remained: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockWorkspaceRepository)
			mockRepo.On("EvictIdle", tt.ttl).Return(tt.evicted)
			mockRepo.On("Count").Return(tt.remained)

			service := NewStatsService(mockRepo, testutil.NewTestLogger())

			assert.Equal(t, tt.evicted, service.CleanupIdleSessions(tt.ttl))
			mockRepo.AssertExpectations(t)
		})
	}
}
