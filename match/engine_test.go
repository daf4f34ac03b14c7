package match

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/nexusworks/matchpoint/ai/mock"
	"github.com/nexusworks/matchpoint/core"
	"github.com/nexusworks/matchpoint/storage"
	"github.com/nexusworks/matchpoint/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	engine, err := NewEngine(repo, mock.NewMockProvider(), opts...)
	require.NoError(t, err)
	return engine
}

func seedEntity(t *testing.T, engine *Engine, e *core.Entity) {
	t.Helper()
	_, err := engine.entityRepository.AddEntities(context.Background(), e)
	require.NoError(t, err)
}

func seedQueryIndividual(t *testing.T, engine *Engine) *core.Entity {
	t.Helper()
	query := &core.Entity{
		Id:   "ind-query",
		Type: core.EntityTypeIndividual,
		Name: "Query Individual",
		Attributes: core.Attributes{
			Profile:     "researcher/academic",
			Skills:      []string{"python", "machine learning"},
			Preferences: []string{"funding"},
			Delivery:    core.DeliveryRemote,
			Duration:    core.DurationRange{MinMonths: 1, MaxMonths: 3},
		},
		Vector: []float32{1, 0, 0},
	}
	seedEntity(t, engine, query)
	return query
}

func seedProject(t *testing.T, engine *Engine, id core.EntityID, vector []float32, attrs core.Attributes) {
	t.Helper()
	seedEntity(t, engine, &core.Entity{
		Id:         id,
		Type:       core.EntityTypeProjectCall,
		Name:       "Project " + string(id),
		Attributes: attrs,
		Vector:     vector,
	})
}

func TestNewEngine(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		engine, err := NewEngine(repo, provider)
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("with custom logger", func(t *testing.T) {
		engine, err := NewEngine(repo, provider, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewEngine(nil, provider)
		assert.Equal(t, ErrEntityRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewEngine(repo, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("invalid config rejected at construction", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights.Semantic = 0.9
		_, err := NewEngine(repo, provider, WithConfig(cfg))
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestMatchRanksByCompositeScore(t *testing.T) {
	engine := newTestEngine(t)
	query := seedQueryIndividual(t, engine)

	strongAttrs := core.Attributes{
		ApplicantTypes: []string{"researcher/academic"},
		Interests:      []string{"funding-opportunity"},
		Delivery:       core.DeliveryRemote,
		Duration:       core.DurationRange{MinMonths: 1, MaxMonths: 3},
		Status:         "active",
	}
	// Identical vector, perfect rule alignment.
	seedProject(t, engine, "proj-strong", []float32{1, 0, 0}, strongAttrs)
	// Same rules but weaker semantic similarity.
	seedProject(t, engine, "proj-weaker", []float32{0.6, 0.8, 0}, strongAttrs)
	// Orthogonal vector, no rule alignment at all.
	seedProject(t, engine, "proj-unrelated", []float32{0, 0, 1}, core.Attributes{Status: "active"})

	recs, err := engine.Match(context.Background(), query.Type, query.Id, 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, core.EntityID("proj-strong"), recs[0].TargetId)
	assert.Equal(t, core.EntityID("proj-weaker"), recs[1].TargetId)
	assert.Equal(t, core.EntityID("proj-unrelated"), recs[2].TargetId)

	assert.InDelta(t, 1.0, recs[0].CompositeScore, weightTolerance)
	assert.Equal(t, core.ConfidenceHigh, recs[0].Confidence)
	assert.Equal(t, core.ConfidenceLow, recs[2].Confidence)
	assert.Equal(t, 1, recs[0].Rank)
	assert.Equal(t, 3, recs[2].Rank)
	assert.NotEmpty(t, recs[0].Reasons)

	// Breakdown for the strong match shows every factor at full score.
	assert.Equal(t, 1.0, recs[0].Breakdown.TypeMatch)
	assert.Equal(t, 1.0, recs[0].Breakdown.Preference)
	assert.Equal(t, 1.0, recs[0].Breakdown.Delivery)
	assert.Equal(t, 1.0, recs[0].Breakdown.Duration)
}

func TestMatchRemotePreferenceScenario(t *testing.T) {
	engine := newTestEngine(t)
	seedEntity(t, engine, &core.Entity{
		Id:   "ind-remote",
		Type: core.EntityTypeIndividual,
		Name: "Remote Seeker",
		Attributes: core.Attributes{
			Skills:      []string{"python", "ml"},
			Preferences: []string{"remote"},
			Delivery:    core.DeliveryRemote,
			Duration:    core.DurationRange{MinMonths: 3, MaxMonths: 3},
		},
		Vector: []float32{1, 0, 0},
	})
	// Close semantic fit, remote delivery, matching duration. The remote
	// preference is satisfied by the delivery mode itself.
	seedProject(t, engine, "proj-remote", []float32{0.9, 0.43588989, 0}, core.Attributes{
		Status:   "active",
		Delivery: core.DeliveryRemote,
		Duration: core.DurationRange{MinMonths: 3, MaxMonths: 3},
	})
	// Weak semantic fit and an opposed delivery mode, rejected outright.
	seedProject(t, engine, "proj-onsite", []float32{0.4, 0.91651519, 0}, core.Attributes{
		Status:   "active",
		Delivery: core.DeliveryInPerson,
		Duration: core.DurationRange{MinMonths: 3, MaxMonths: 3},
	})

	recs, err := engine.Match(context.Background(), core.EntityTypeIndividual, "ind-remote", 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, core.EntityID("proj-remote"), recs[0].TargetId)
	assert.Equal(t, 1.0, recs[0].Breakdown.Preference)
	// 0.55 * 0.9 semantic plus the full preference, delivery and
	// duration weights.
	assert.InDelta(t, 0.745, recs[0].CompositeScore, 1e-6)
	assert.Equal(t, core.ConfidenceHigh, recs[0].Confidence)
}

// failingIndexRepository delegates everything to a working repository
// but fails similarity queries with a fixed error.
type failingIndexRepository struct {
	storage.EntityRepository
	findErr error
}

func (r *failingIndexRepository) FindNearest(_ context.Context, _ []float32, _ core.EntityType, _ int) ([]core.CandidateMatch, error) {
	return nil, r.findErr
}

func TestMatchIndexFailureMapping(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	query := &core.Entity{
		Id:     "ind-query",
		Type:   core.EntityTypeIndividual,
		Name:   "Query Individual",
		Vector: []float32{1, 0, 0},
	}
	_, err = repo.AddEntities(context.Background(), query)
	require.NoError(t, err)

	tests := []struct {
		name    string
		findErr error
		want    error
	}{
		{"deadline exceeded maps to retrieval timeout", context.DeadlineExceeded, ErrRetrievalTimeout},
		{"other failures map to index unavailable", errors.New("index corrupted"), ErrIndexUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := &failingIndexRepository{EntityRepository: repo, findErr: tt.findErr}
			engine, err := NewEngine(wrapped, mock.NewMockProvider())
			require.NoError(t, err)

			_, err = engine.Match(context.Background(), query.Type, query.Id, 5)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.findErr)
		})
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	query := seedQueryIndividual(t, engine)

	attrs := core.Attributes{Status: "active", Delivery: core.DeliveryRemote}
	seedProject(t, engine, "proj-b", []float32{0.8, 0.6, 0}, attrs)
	seedProject(t, engine, "proj-a", []float32{0.8, 0.6, 0}, attrs)
	seedProject(t, engine, "proj-c", []float32{0.9, 0.4358899, 0}, attrs)

	first, err := engine.Match(context.Background(), query.Type, query.Id, 10)
	require.NoError(t, err)
	second, err := engine.Match(context.Background(), query.Type, query.Id, 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Equal composites are ordered by ascending target id.
	require.Len(t, first, 3)
	assert.Equal(t, core.EntityID("proj-c"), first[0].TargetId)
	assert.Equal(t, core.EntityID("proj-a"), first[1].TargetId)
	assert.Equal(t, core.EntityID("proj-b"), first[2].TargetId)
}

func TestMatchTopKLimit(t *testing.T) {
	engine := newTestEngine(t)
	query := seedQueryIndividual(t, engine)

	attrs := core.Attributes{Status: "active"}
	seedProject(t, engine, "proj-a", []float32{0.9, 0.1, 0}, attrs)
	seedProject(t, engine, "proj-b", []float32{0.8, 0.2, 0}, attrs)
	seedProject(t, engine, "proj-c", []float32{0.7, 0.3, 0}, attrs)

	recs, err := engine.Match(context.Background(), query.Type, query.Id, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestMatchInvalidTopK(t *testing.T) {
	engine := newTestEngine(t)
	query := seedQueryIndividual(t, engine)

	_, err := engine.Match(context.Background(), query.Type, query.Id, 0)
	assert.ErrorIs(t, err, ErrInvalidTopK)
}

func TestMatchEmptyPool(t *testing.T) {
	t.Run("allowed by default", func(t *testing.T) {
		engine := newTestEngine(t)
		query := seedQueryIndividual(t, engine)

		recs, err := engine.Match(context.Background(), query.Type, query.Id, 5)
		require.NoError(t, err)
		assert.Empty(t, recs)
		assert.NotNil(t, recs)
	})

	t.Run("fatal when disallowed", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.AllowEmptyPool = false
		engine := newTestEngine(t, WithConfig(cfg))
		query := seedQueryIndividual(t, engine)

		_, err := engine.Match(context.Background(), query.Type, query.Id, 5)
		assert.ErrorIs(t, err, ErrEmptyCandidatePool)
	})
}

func TestMatchFiltersIneligibleCandidates(t *testing.T) {
	engine := newTestEngine(t)
	query := seedQueryIndividual(t, engine)

	seedProject(t, engine, "proj-active", []float32{1, 0, 0}, core.Attributes{Status: "active"})
	seedProject(t, engine, "proj-closed", []float32{1, 0, 0}, core.Attributes{Status: "closed"})
	seedProject(t, engine, "proj-onsite", []float32{1, 0, 0}, core.Attributes{
		Status:   "active",
		Delivery: core.DeliveryInPerson,
	})

	recs, err := engine.Match(context.Background(), query.Type, query.Id, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, core.EntityID("proj-active"), recs[0].TargetId)
}

func TestMatchEmbedsQueryTextWhenVectorMissing(t *testing.T) {
	engine := newTestEngine(t)

	seedEntity(t, engine, &core.Entity{
		Id:   "ind-textonly",
		Type: core.EntityTypeIndividual,
		Name: "Text Only",
		Text: "python developer seeking research funding",
	})
	seedProject(t, engine, "proj-a", []float32{0.5, 0.5, 0.70710677}, core.Attributes{Status: "active"})

	recs, err := engine.Match(context.Background(), core.EntityTypeIndividual, "ind-textonly", 5)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestMatchMissingVectorAndText(t *testing.T) {
	engine := newTestEngine(t)

	seedEntity(t, engine, &core.Entity{
		Id:   "ind-bare",
		Type: core.EntityTypeIndividual,
		Name: "Bare",
	})

	_, err := engine.Match(context.Background(), core.EntityTypeIndividual, "ind-bare", 5)
	assert.ErrorIs(t, err, ErrMissingVector)
}

// recordingMonitor captures monitor callbacks for assertions.
type recordingMonitor struct {
	started    bool
	retrievals int
	retries    []int
	scoredIds  []core.EntityID
	finished   []core.Recommendation
}

func (m *recordingMonitor) Start(_ core.EntityID, _ int)            { m.started = true }
func (m *recordingMonitor) AfterRetrieval(_ []core.CandidateMatch)  { m.retrievals++ }
func (m *recordingMonitor) AfterEligibility(_ []core.EntityID)      {}
func (m *recordingMonitor) Retrying(_, fetchSize int)               { m.retries = append(m.retries, fetchSize) }
func (m *recordingMonitor) Finish(results []core.Recommendation)    { m.finished = results }
func (m *recordingMonitor) Scored(id core.EntityID, _ core.ScoreBreakdown, _ float64) {
	m.scoredIds = append(m.scoredIds, id)
}

func TestMatchWidensRetrievalWhenFilteringStarves(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OverfetchFactor = 1
	engine := newTestEngine(t, WithConfig(cfg))
	query := seedQueryIndividual(t, engine)

	// Closed projects sit closest to the query vector, so the first
	// narrow fetch returns only candidates that filtering discards.
	seedProject(t, engine, "proj-closed-a", []float32{1, 0, 0}, core.Attributes{Status: "closed"})
	seedProject(t, engine, "proj-closed-b", []float32{0.99, 0.14106736, 0}, core.Attributes{Status: "closed"})
	seedProject(t, engine, "proj-open", []float32{0.5, 0.8660254, 0}, core.Attributes{Status: "active"})

	monitor := &recordingMonitor{}
	recs, err := engine.MatchWithMonitor(context.Background(), query.Type, query.Id, 2, monitor)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, core.EntityID("proj-open"), recs[0].TargetId)
	assert.True(t, monitor.started)
	assert.Equal(t, 2, monitor.retrievals)
	assert.Equal(t, []int{4}, monitor.retries)
	assert.Equal(t, recs, monitor.finished)
}

func TestMatchReverseDirection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetType = core.EntityTypeIndividual
	engine := newTestEngine(t, WithConfig(cfg))

	seedEntity(t, engine, &core.Entity{
		Id:     "proj-query",
		Type:   core.EntityTypeProjectCall,
		Name:   "Query Project",
		Vector: []float32{1, 0, 0},
		Attributes: core.Attributes{
			ApplicantTypes: []string{"student/early-career"},
			Status:         "active",
		},
	})
	seedEntity(t, engine, &core.Entity{
		Id:     "ind-a",
		Type:   core.EntityTypeIndividual,
		Name:   "Candidate",
		Vector: []float32{1, 0, 0},
		Attributes: core.Attributes{
			Profile: "student/early-career",
		},
	})

	recs, err := engine.Match(context.Background(), core.EntityTypeProjectCall, "proj-query", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, core.EntityID("ind-a"), recs[0].TargetId)
	assert.Equal(t, 1.0, recs[0].Breakdown.TypeMatch)
}

func TestMatchUnknownQueryEntity(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Match(context.Background(), core.EntityTypeIndividual, "ind-missing", 5)
	require.Error(t, err)
}
