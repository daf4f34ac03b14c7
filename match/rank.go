package match

import (
	"cmp"
	"slices"

	"github.com/nexusworks/matchpoint/core"
)

// scoredCandidate pairs a candidate entity with its computed scores
// before ranking.
type scoredCandidate struct {
	target    *core.Entity
	breakdown core.ScoreBreakdown
	composite float64
}

// rank orders scored candidates by descending composite score, breaking
// ties by ascending target id, and materializes the top K as
// recommendations with 1-based ranks.
func rank(cfg Config, queryID core.EntityID, scored []scoredCandidate, topK int) []core.Recommendation {
	slices.SortFunc(scored, func(a, b scoredCandidate) int {
		if c := cmp.Compare(b.composite, a.composite); c != 0 {
			return c
		}
		return cmp.Compare(a.target.Id, b.target.Id)
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}

	recs := make([]core.Recommendation, len(scored))
	for i, sc := range scored {
		recs[i] = core.Recommendation{
			SourceId:       queryID,
			TargetId:       sc.target.Id,
			CompositeScore: sc.composite,
			Confidence:     cfg.confidence(sc.composite),
			Breakdown:      sc.breakdown,
			Reasons:        matchReasons(sc.target, sc.breakdown),
			Rank:           i + 1,
		}
	}
	return recs
}
