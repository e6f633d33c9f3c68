package service

import (
	"context"
	"errors"
	"testing"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"president-insights/internal/domain"
	"president-insights/internal/insights"
	"president-insights/internal/repository"
	"president-insights/internal/twitter"
	"president-insights/internal/watson"
)

type mockAnalysisRepo struct {
	created    []domain.PoliticianProfile
	createErr  error
	latest     domain.PoliticianProfile
	latestErr  error
	history    []domain.PoliticianProfile
	lastLimit  int
	similar    []domain.SimilarPolitician
	lastVector pgvector.Vector
	lastK      int
}

func (m *mockAnalysisRepo) Create(_ context.Context, profile domain.PoliticianProfile) error {
	m.created = append(m.created, profile)
	return m.createErr
}

func (m *mockAnalysisRepo) Latest(context.Context, string) (domain.PoliticianProfile, error) {
	return m.latest, m.latestErr
}

func (m *mockAnalysisRepo) ListByHandle(_ context.Context, _ string, limit int) ([]domain.PoliticianProfile, error) {
	m.lastLimit = limit
	return m.history, nil
}

func (m *mockAnalysisRepo) Nearest(_ context.Context, _ string, vector pgvector.Vector, k int) ([]domain.SimilarPolitician, error) {
	m.lastVector = vector
	m.lastK = k
	return m.similar, nil
}

// watsonTree arma un arbol con forma Big 5 que contiene todas las facetas.
func watsonTree(skip ...string) insights.CategoryNode {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	var facets []insights.CategoryNode
	for i, name := range domain.TraitNames {
		if skipped[name] {
			continue
		}
		facets = append(facets, insights.CategoryNode{ID: name, Category: domain.CategoryPersonality, Percentage: float64(i+1) / 100})
	}
	return insights.CategoryNode{ID: "r", Children: []insights.CategoryNode{
		{ID: "personality", Children: []insights.CategoryNode{
			{ID: "Openness_parent", Category: domain.CategoryPersonality, Children: []insights.CategoryNode{
				{ID: "Openness", Category: domain.CategoryPersonality, Children: facets},
			}},
		}},
	}}
}

func sampleStatuses() []domain.Status {
	return []domain.Status{
		{Text: "We will win", Lang: "en", User: domain.TwitterUser{ProfileImageURLHTTPS: "https://pbs.twimg.com/p/me_normal.jpg"}},
		{Text: "Gracias", Lang: "es"},
		{Text: "Vote today", Lang: "en"},
	}
}

func newTestService(fetcher twitter.TimelineFetcher, analyzer watson.Analyzer, repo repository.AnalysisRepository, cache ProfileCache) *AnalysisService {
	svc := NewAnalysisService(fetcher, analyzer, repo, cache,
		map[string]string{"realDonaldTrump": "Donald Trump", "HillaryClinton": "Hillary Clinton"},
		AnalysisOptions{}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2016, 11, 8, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestAnalysisServiceHappyPath(t *testing.T) {
	fetcher := &twitter.MockFetcher{Statuses: sampleStatuses()}
	analyzer := &watson.MockAnalyzer{Result: watson.Profile{WordCount: 4200, Tree: watsonTree()}}
	repo := &mockAnalysisRepo{}
	cache := NewMemoryProfileCache()

	svc := newTestService(fetcher, analyzer, repo, cache)
	profile, err := svc.Analyze(context.Background(), "@realdonaldtrump")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if fetcher.LastHandle != "realDonaldTrump" || fetcher.LastCount != 200 || fetcher.LastRTs {
		t.Fatalf("unexpected timeline call: handle=%s count=%d rts=%v", fetcher.LastHandle, fetcher.LastCount, fetcher.LastRTs)
	}
	if analyzer.LastText != "We will win Vote today" {
		t.Fatalf("unexpected corpus %q", analyzer.LastText)
	}
	if profile.Name != "Donald Trump" || profile.ProfileImageURL != "https://pbs.twimg.com/p/me.jpg" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.WordCount != 4200 || profile.ID == "" {
		t.Fatalf("unexpected metadata: %+v", profile)
	}
	if profile.Traits.Trust != 0.02 || profile.Traits.Intellect != 0.30 {
		t.Fatalf("unexpected traits: %+v", profile.Traits)
	}
	if len(profile.Flattened) != len(domain.TraitNames) {
		t.Fatalf("expected %d flattened traits, got %d", len(domain.TraitNames), len(profile.Flattened))
	}
	if !profile.AnalyzedAt.Equal(time.Date(2016, 11, 8, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected analyzed_at %v", profile.AnalyzedAt)
	}
	if len(repo.created) != 1 || repo.created[0].ID != profile.ID {
		t.Fatalf("expected profile persisted once")
	}

	// Segunda llamada sale de cache.
	if _, err := svc.Analyze(context.Background(), "realDonaldTrump"); err != nil {
		t.Fatalf("expected cached result, got %v", err)
	}
	if fetcher.Calls != 1 || analyzer.Calls != 1 {
		t.Fatalf("expected cache hit, got fetch=%d analyze=%d", fetcher.Calls, analyzer.Calls)
	}

	// Refresh ignora la cache.
	if _, err := svc.Refresh(context.Background(), "realDonaldTrump"); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if fetcher.Calls != 2 || len(repo.created) != 2 {
		t.Fatalf("expected refresh to rerun pipeline, got fetch=%d persisted=%d", fetcher.Calls, len(repo.created))
	}
}

func TestAnalysisServiceUnknownHandle(t *testing.T) {
	fetcher := &twitter.MockFetcher{}
	svc := newTestService(fetcher, &watson.MockAnalyzer{}, nil, nil)

	if _, err := svc.Analyze(context.Background(), "nobody"); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("expected ErrUnknownHandle, got %v", err)
	}
	if fetcher.Calls != 0 {
		t.Fatalf("expected no timeline fetch")
	}
}

func TestAnalysisServiceMissingTraitFails(t *testing.T) {
	fetcher := &twitter.MockFetcher{Statuses: sampleStatuses()}
	analyzer := &watson.MockAnalyzer{Result: watson.Profile{Tree: watsonTree("Modesty")}}
	repo := &mockAnalysisRepo{}

	svc := newTestService(fetcher, analyzer, repo, nil)
	_, err := svc.Analyze(context.Background(), "HillaryClinton")
	if !errors.Is(err, insights.ErrTraitNotFound) {
		t.Fatalf("expected ErrTraitNotFound, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestAnalysisServiceEmptyTimeline(t *testing.T) {
	fetcher := &twitter.MockFetcher{}
	analyzer := &watson.MockAnalyzer{Result: watson.Profile{Tree: watsonTree()}}

	svc := newTestService(fetcher, analyzer, nil, nil)
	if _, err := svc.Analyze(context.Background(), "HillaryClinton"); !errors.Is(err, twitter.ErrNoStatuses) {
		t.Fatalf("expected ErrNoStatuses, got %v", err)
	}
	if analyzer.Calls != 0 {
		t.Fatalf("expected analyzer not called for empty timeline")
	}
}

func TestBuildProfileIsPure(t *testing.T) {
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	politician := domain.Politician{Handle: "JoeBiden", Name: "Joe Biden"}
	result := watson.Profile{WordCount: 900, Tree: watsonTree()}

	first, err := BuildProfile("id-1", politician, "https://img/joe.jpg", result, at)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := BuildProfile("id-1", politician, "https://img/joe.jpg", result, at)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.Traits != second.Traits || len(first.Flattened) != len(second.Flattened) {
		t.Fatalf("expected identical results")
	}
	if first.ProfileImageURL != "https://img/joe.jpg" || first.WordCount != 900 {
		t.Fatalf("unexpected profile: %+v", first)
	}
}

func TestAnalysisServiceUpstreamErrors(t *testing.T) {
	t.Run("twitter", func(t *testing.T) {
		fetcher := &twitter.MockFetcher{Err: errors.New("rate limited")}
		analyzer := &watson.MockAnalyzer{}
		svc := newTestService(fetcher, analyzer, nil, nil)
		if _, err := svc.Analyze(context.Background(), "HillaryClinton"); err == nil {
			t.Fatalf("expected error")
		}
		if analyzer.Calls != 0 {
			t.Fatalf("expected analyzer not called")
		}
	})

	t.Run("watson", func(t *testing.T) {
		fetcher := &twitter.MockFetcher{Statuses: sampleStatuses()}
		analyzer := &watson.MockAnalyzer{Err: watson.ErrEmptyText}
		svc := newTestService(fetcher, analyzer, nil, nil)
		if _, err := svc.Analyze(context.Background(), "HillaryClinton"); !errors.Is(err, watson.ErrEmptyText) {
			t.Fatalf("expected ErrEmptyText, got %v", err)
		}
	})
}

func TestAnalysisServicePersistFailureDoesNotFail(t *testing.T) {
	fetcher := &twitter.MockFetcher{Statuses: sampleStatuses()}
	analyzer := &watson.MockAnalyzer{Result: watson.Profile{Tree: watsonTree()}}
	repo := &mockAnalysisRepo{createErr: errors.New("db down")}

	svc := newTestService(fetcher, analyzer, repo, nil)
	if _, err := svc.Analyze(context.Background(), "HillaryClinton"); err != nil {
		t.Fatalf("expected analysis to succeed despite persist error, got %v", err)
	}
}

func TestAnalysisServicePoliticians(t *testing.T) {
	svc := newTestService(&twitter.MockFetcher{}, &watson.MockAnalyzer{}, nil, nil)
	got := svc.Politicians()
	if len(got) != 2 || got[0].Handle != "HillaryClinton" || got[1].Handle != "realDonaldTrump" {
		t.Fatalf("unexpected politicians: %+v", got)
	}
}

func TestAnalysisServiceHistoryAndSimilar(t *testing.T) {
	t.Run("persistence disabled", func(t *testing.T) {
		svc := newTestService(&twitter.MockFetcher{}, &watson.MockAnalyzer{}, nil, nil)
		if _, err := svc.History(context.Background(), "HillaryClinton", 5); !errors.Is(err, ErrPersistenceDisabled) {
			t.Fatalf("expected ErrPersistenceDisabled, got %v", err)
		}
		if _, err := svc.Similar(context.Background(), "HillaryClinton", 3); !errors.Is(err, ErrPersistenceDisabled) {
			t.Fatalf("expected ErrPersistenceDisabled, got %v", err)
		}
	})

	t.Run("similar uses latest trait vector", func(t *testing.T) {
		repo := &mockAnalysisRepo{
			latest:  domain.PoliticianProfile{Handle: "HillaryClinton", Traits: domain.PersonalityTraits{Cheerfulness: 0.5}},
			similar: []domain.SimilarPolitician{{Handle: "realDonaldTrump", Distance: 0.3}},
		}
		svc := newTestService(&twitter.MockFetcher{}, &watson.MockAnalyzer{}, repo, nil)

		got, err := svc.Similar(context.Background(), "hillaryclinton", 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 || got[0].Handle != "realDonaldTrump" {
			t.Fatalf("unexpected similar: %+v", got)
		}
		vec := repo.lastVector.Slice()
		if len(vec) != len(domain.TraitNames) || vec[0] != 0.5 || repo.lastK != 3 {
			t.Fatalf("unexpected nearest query: vec=%v k=%d", vec, repo.lastK)
		}
	})

	t.Run("similar without analyses", func(t *testing.T) {
		repo := &mockAnalysisRepo{latestErr: repository.ErrNotFound}
		svc := newTestService(&twitter.MockFetcher{}, &watson.MockAnalyzer{}, repo, nil)
		if _, err := svc.Similar(context.Background(), "HillaryClinton", 3); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("history", func(t *testing.T) {
		repo := &mockAnalysisRepo{history: []domain.PoliticianProfile{{ID: "a"}, {ID: "b"}}}
		svc := newTestService(&twitter.MockFetcher{}, &watson.MockAnalyzer{}, repo, nil)
		got, err := svc.History(context.Background(), "HillaryClinton", 7)
		if err != nil || len(got) != 2 || repo.lastLimit != 7 {
			t.Fatalf("unexpected history: %+v err=%v limit=%d", got, err, repo.lastLimit)
		}
	})
}
