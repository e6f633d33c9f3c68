package watson

import "context"

// MockAnalyzer permite tests sin llamar a Watson.
type MockAnalyzer struct {
	Result   Profile
	Err      error
	LastText string
	Calls    int
}

func (m *MockAnalyzer) Profile(ctx context.Context, text string) (Profile, error) {
	m.Calls++
	m.LastText = text
	return m.Result, m.Err
}
