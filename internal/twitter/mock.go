package twitter

import (
	"context"

	"president-insights/internal/domain"
)

// MockFetcher permite tests sin llamar a Twitter.
type MockFetcher struct {
	Statuses []domain.Status
	Err      error

	Calls      int
	LastHandle string
	LastCount  int
	LastRTs    bool
}

func (m *MockFetcher) UserTimeline(ctx context.Context, screenName string, count int, includeRetweets bool) ([]domain.Status, error) {
	m.Calls++
	m.LastHandle = screenName
	m.LastCount = count
	m.LastRTs = includeRetweets
	return m.Statuses, m.Err
}
