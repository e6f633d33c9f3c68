package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"president-insights/internal/domain"
	"president-insights/internal/insights"
	"president-insights/internal/repository"
	"president-insights/internal/twitter"
	"president-insights/internal/watson"
)

var (
	ErrUnknownHandle       = errors.New("unknown politician handle")
	ErrPersistenceDisabled = errors.New("persistence not configured")
)

// AnalysisOptions ajusta el pipeline; los ceros toman valores por defecto.
type AnalysisOptions struct {
	TimelineCount int
	CacheTTL      time.Duration
}

// AnalysisService ejecuta timeline -> foto -> Watson -> aplanado -> rasgos.
type AnalysisService struct {
	fetcher  twitter.TimelineFetcher
	analyzer watson.Analyzer
	repo     repository.AnalysisRepository
	cache    ProfileCache
	handles  map[string]string
	opts     AnalysisOptions
	logger   *zap.Logger
	now      func() time.Time
}

// NewAnalysisService recibe la configuracion explicita; repo y cache pueden ser nil.
func NewAnalysisService(
	fetcher twitter.TimelineFetcher,
	analyzer watson.Analyzer,
	repo repository.AnalysisRepository,
	cache ProfileCache,
	handles map[string]string,
	opts AnalysisOptions,
	logger *zap.Logger,
) *AnalysisService {
	if opts.TimelineCount <= 0 {
		opts.TimelineCount = twitter.DefaultTimelineCount
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 6 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	copied := make(map[string]string, len(handles))
	for h, name := range handles {
		copied[strings.TrimSpace(h)] = strings.TrimSpace(name)
	}
	return &AnalysisService{
		fetcher:  fetcher,
		analyzer: analyzer,
		repo:     repo,
		cache:    cache,
		handles:  copied,
		opts:     opts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Politicians lista los handles configurados ordenados.
func (s *AnalysisService) Politicians() []domain.Politician {
	out := make([]domain.Politician, 0, len(s.handles))
	for h, name := range s.handles {
		out = append(out, domain.Politician{Handle: h, Name: name})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Handle) < strings.ToLower(out[j].Handle)
	})
	return out
}

// Resolve busca el handle sin distinguir mayusculas ni el @ inicial.
func (s *AnalysisService) Resolve(handle string) (domain.Politician, error) {
	wanted := strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if name, ok := s.handles[wanted]; ok {
		return domain.Politician{Handle: wanted, Name: name}, nil
	}
	for h, name := range s.handles {
		if strings.EqualFold(h, wanted) {
			return domain.Politician{Handle: h, Name: name}, nil
		}
	}
	return domain.Politician{}, fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
}

// Analyze devuelve el perfil cacheado o corre el pipeline completo.
func (s *AnalysisService) Analyze(ctx context.Context, handle string) (domain.PoliticianProfile, error) {
	politician, err := s.Resolve(handle)
	if err != nil {
		return domain.PoliticianProfile{}, err
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, politician.Handle)
		if err != nil {
			s.logger.Warn("profile cache get failed", zap.Error(err), zap.String("handle", politician.Handle))
		} else if ok {
			return cached, nil
		}
	}

	return s.run(ctx, politician)
}

// Refresh ignora la cache y vuelve a analizar.
func (s *AnalysisService) Refresh(ctx context.Context, handle string) (domain.PoliticianProfile, error) {
	politician, err := s.Resolve(handle)
	if err != nil {
		return domain.PoliticianProfile{}, err
	}
	return s.run(ctx, politician)
}

func (s *AnalysisService) run(ctx context.Context, politician domain.Politician) (domain.PoliticianProfile, error) {
	statuses, err := s.fetcher.UserTimeline(ctx, politician.Handle, s.opts.TimelineCount, false)
	if err != nil {
		return domain.PoliticianProfile{}, fmt.Errorf("fetch timeline for %s: %w", politician.Handle, err)
	}

	picture, err := twitter.ProfilePictureURL(statuses)
	if err != nil {
		return domain.PoliticianProfile{}, fmt.Errorf("profile picture for %s: %w", politician.Handle, err)
	}

	corpus := twitter.ComposeCorpus(statuses)
	result, err := s.analyzer.Profile(ctx, corpus)
	if err != nil {
		return domain.PoliticianProfile{}, fmt.Errorf("analyze %s: %w", politician.Handle, err)
	}

	profile, err := BuildProfile(uuid.NewString(), politician, picture, result, s.now())
	if err != nil {
		return domain.PoliticianProfile{}, err
	}

	s.logger.Info("politician analyzed",
		zap.String("handle", profile.Handle),
		zap.Int("statuses", len(statuses)),
		zap.Int("word_count", profile.WordCount),
		zap.Int("traits", len(profile.Flattened)),
	)

	if s.repo != nil {
		if err := s.repo.Create(ctx, profile); err != nil {
			s.logger.Warn("analysis persist failed", zap.Error(err), zap.String("handle", profile.Handle))
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, profile, s.opts.CacheTTL); err != nil {
			s.logger.Warn("profile cache set failed", zap.Error(err), zap.String("handle", profile.Handle))
		}
	}

	return profile, nil
}

// BuildProfile arma el registro final a partir de datos ya obtenidos; no hace I/O.
func BuildProfile(id string, politician domain.Politician, picture string, result watson.Profile, analyzedAt time.Time) (domain.PoliticianProfile, error) {
	flat := insights.Flatten(result.Tree)
	traits, err := insights.BuildTraits(flat)
	if err != nil {
		return domain.PoliticianProfile{}, fmt.Errorf("build traits for %s: %w", politician.Handle, err)
	}

	return domain.PoliticianProfile{
		ID:              id,
		Handle:          politician.Handle,
		Name:            politician.Name,
		ProfileImageURL: picture,
		WordCount:       result.WordCount,
		Traits:          traits,
		Flattened:       flat,
		AnalyzedAt:      analyzedAt,
	}, nil
}

// History devuelve los analisis persistidos mas recientes.
func (s *AnalysisService) History(ctx context.Context, handle string, limit int) ([]domain.PoliticianProfile, error) {
	politician, err := s.Resolve(handle)
	if err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.repo.ListByHandle(ctx, politician.Handle, limit)
}

// Similar busca los politicos con rasgos mas cercanos al ultimo analisis guardado.
func (s *AnalysisService) Similar(ctx context.Context, handle string, k int) ([]domain.SimilarPolitician, error) {
	politician, err := s.Resolve(handle)
	if err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}
	latest, err := s.repo.Latest(ctx, politician.Handle)
	if err != nil {
		return nil, err
	}
	return s.repo.Nearest(ctx, politician.Handle, pgvector.NewVector(latest.Traits.Vector()), k)
}
