package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/apperror"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/metrics"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/normalize"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/repository"
)

// CommunityInput carries one submitted community form.
type CommunityInput struct {
	Name        string `json:"name"`
	AGADivision string `json:"agaDivision"`
	GSDivision  string `json:"gsDivision"`
}

// CommunityService owns the standalone community collection. Communities are
// lighter-weight than records — append-only, no edit or delete — so the
// service carries no backup snapshot, only the same load/normalise/save
// shape.
type CommunityService struct {
	mu      sync.Mutex
	store   repository.Store
	norm    *normalize.Normalizer
	metrics *metrics.Metrics
	logger  *slog.Logger

	communities []model.Community

	newID func() string
	now   func() time.Time
}

// NewCommunityService creates a CommunityService. metrics may be nil (tests).
func NewCommunityService(store repository.Store, norm *normalize.Normalizer, m *metrics.Metrics, logger *slog.Logger) *CommunityService {
	return &CommunityService{
		store:   store,
		norm:    norm,
		metrics: m,
		logger:  logger,
		newID:   func() string { return uuid.NewString() },
		now:     time.Now,
	}
}

// Load reads and normalises the collection. A read failure leaves the
// current working set in place and is reported to the caller.
func (s *CommunityService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.ReadCommunities(ctx)
	if err != nil {
		s.metrics.IncrementStorageError("communities", "read")
		s.logger.Error("community load failed", slog.String("error", err.Error()))
		return fmt.Errorf("loading communities: %w", err)
	}

	communities := make([]model.Community, len(raw))
	for i, c := range raw {
		communities[i] = s.norm.Community(c)
	}

	s.communities = communities
	s.logger.Info("communities loaded", slog.Int("count", len(communities)))
	return nil
}

// List returns the collection, newest first.
func (s *CommunityService) List() []model.Community {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneCommunities(s.communities)
}

// Add validates the input and prepends the new community.
func (s *CommunityService) Add(ctx context.Context, in CommunityInput) (model.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Community{}, apperror.ValidationFailed("name", "community name is required")
	}
	for i := range s.communities {
		if strings.EqualFold(s.communities[i].Name, name) {
			return model.Community{}, apperror.Conflict("name", "this community already exists")
		}
	}

	lists := s.norm.Lists()
	community := model.Community{
		ID:          s.newID(),
		Name:        name,
		AGADivision: normalize.ResolveField(strings.TrimSpace(in.AGADivision), lists.AGADivisions),
		GSDivision:  normalize.ResolveField(strings.TrimSpace(in.GSDivision), lists.GSDivisions),
		CreatedAt:   s.now(),
	}
	s.communities = append([]model.Community{community}, s.communities...)

	if err := s.store.WriteCommunities(ctx, s.communities); err != nil {
		s.metrics.IncrementStorageError("communities", "write")
		s.logger.Error("failed to save communities",
			slog.Int("count", len(s.communities)),
			slog.String("error", err.Error()),
		)
		return community.Clone(), fmt.Errorf("saving communities: %w", err)
	}

	s.metrics.IncrementMutation("communities", "add")
	s.logger.Info("community added",
		slog.String("id", community.ID),
		slog.String("name", community.Name),
	)
	return community.Clone(), nil
}

// Names returns the community names in the standalone collection.
func (s *CommunityService) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.communities))
	for i := range s.communities {
		names[i] = s.communities[i].Name
	}
	return names
}

// Suggestions merges the standalone community names with every community
// string attached to a record, de-duplicated case-insensitively (first
// spelling wins) and sorted for a stable picker list.
func Suggestions(communityNames, recordNames []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, name := range append(append([]string{}, communityNames...), recordNames...) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(name))
	}
	sort.Strings(out)
	return out
}
