package match

import "github.com/nexusworks/matchpoint/core"

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps and results of a
// single match query.
type MatchMonitor interface {
	Start(queryId core.EntityID, topK int)
	AfterRetrieval(candidates []core.CandidateMatch)
	AfterEligibility(survivors []core.EntityID)
	Scored(targetId core.EntityID, breakdown core.ScoreBreakdown, composite float64)
	Retrying(attempt, fetchSize int)
	Finish(results []core.Recommendation)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.EntityID, _ int)                                {}
func (n *noopMonitor) AfterRetrieval(_ []core.CandidateMatch)                      {}
func (n *noopMonitor) AfterEligibility(_ []core.EntityID)                          {}
func (n *noopMonitor) Scored(_ core.EntityID, _ core.ScoreBreakdown, _ float64)    {}
func (n *noopMonitor) Retrying(_, _ int)                                           {}
func (n *noopMonitor) Finish(_ []core.Recommendation)                              {}
