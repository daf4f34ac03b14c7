// Copyright 2026 Nexusworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package match

import (
	"fmt"
	"math"
	"time"

	"github.com/nexusworks/matchpoint/core"
)

// weightTolerance bounds floating point drift when checking that the
// factor weights sum to one.
const weightTolerance = 1e-9

// Weights holds the relative contribution of each scoring factor to the
// composite score. The five weights must sum to 1.0 within a small
// tolerance.
type Weights struct {
	Semantic   float64
	TypeMatch  float64
	Preference float64
	Delivery   float64
	Duration   float64
}

// DefaultWeights returns the standard factor weighting. Semantic
// similarity dominates; the rule-based factors refine the ordering.
func DefaultWeights() Weights {
	return Weights{
		Semantic:   0.55,
		TypeMatch:  0.20,
		Preference: 0.15,
		Delivery:   0.07,
		Duration:   0.03,
	}
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.Semantic + w.TypeMatch + w.Preference + w.Delivery + w.Duration
}

// Config controls scoring, filtering and retrieval behavior of the
// matching engine.
type Config struct {
	// Weights for the composite score.
	Weights Weights

	// TargetType is the entity type candidates are drawn from.
	TargetType core.EntityType

	// HighThreshold and MediumThreshold split composite scores into
	// confidence bands. Scores strictly above HighThreshold are high;
	// scores at or above MediumThreshold are medium; the rest are low.
	HighThreshold   float64
	MediumThreshold float64

	// PartialTypeScore is awarded when the candidate accepts the query's
	// broad category but not its specific profile.
	PartialTypeScore float64

	// HybridDeliveryScore is awarded when exactly one side is hybrid and
	// the other has a known delivery mode.
	HybridDeliveryScore float64

	// OverfetchFactor multiplies the requested topK when querying the
	// similarity index, compensating for candidates lost to filtering.
	OverfetchFactor int

	// RetryAttempts bounds how many times retrieval is widened (doubling
	// the fetch size) when filtering leaves fewer than topK survivors.
	RetryAttempts int

	// MandatoryAttributes lists attribute names ("delivery", "duration",
	// "preferences", "profile") whose absence disqualifies a pairing.
	// Missing attributes not listed here score zero but do not filter.
	MandatoryAttributes []string

	// SearchTimeout bounds a single similarity index lookup.
	SearchTimeout time.Duration

	// AllowEmptyPool makes a zero-candidate index non-fatal: the engine
	// returns an empty result instead of ErrEmptyCandidatePool.
	AllowEmptyPool bool
}

// DefaultConfig returns a Config with the standard weights, thresholds
// and retrieval parameters.
func DefaultConfig() Config {
	return Config{
		Weights:             DefaultWeights(),
		TargetType:          core.EntityTypeProjectCall,
		HighThreshold:       0.70,
		MediumThreshold:     0.50,
		PartialTypeScore:    0.6,
		HybridDeliveryScore: 0.5,
		OverfetchFactor:     5,
		RetryAttempts:       1,
		SearchTimeout:       5 * time.Second,
		AllowEmptyPool:      true,
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if s := c.Weights.Sum(); math.Abs(s-1.0) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidConfiguration, s)
	}
	if c.Weights.Semantic < 0 || c.Weights.TypeMatch < 0 || c.Weights.Preference < 0 ||
		c.Weights.Delivery < 0 || c.Weights.Duration < 0 {
		return fmt.Errorf("%w: negative weight", ErrInvalidConfiguration)
	}
	if err := core.ValidateEntityType(c.TargetType); err != nil {
		return fmt.Errorf("%w: target type: %v", ErrInvalidConfiguration, err)
	}
	if c.HighThreshold < c.MediumThreshold {
		return fmt.Errorf("%w: high threshold %v below medium threshold %v",
			ErrInvalidConfiguration, c.HighThreshold, c.MediumThreshold)
	}
	if c.MediumThreshold < 0 || c.HighThreshold > 1 {
		return fmt.Errorf("%w: thresholds must lie within [0, 1]", ErrInvalidConfiguration)
	}
	if c.PartialTypeScore < 0 || c.PartialTypeScore > 1 {
		return fmt.Errorf("%w: partial type score must lie within [0, 1]", ErrInvalidConfiguration)
	}
	if c.HybridDeliveryScore < 0 || c.HybridDeliveryScore > 1 {
		return fmt.Errorf("%w: hybrid delivery score must lie within [0, 1]", ErrInvalidConfiguration)
	}
	if c.OverfetchFactor < 1 {
		return fmt.Errorf("%w: overfetch factor must be at least 1", ErrInvalidConfiguration)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts must not be negative", ErrInvalidConfiguration)
	}
	if c.SearchTimeout <= 0 {
		return fmt.Errorf("%w: search timeout must be positive", ErrInvalidConfiguration)
	}
	for _, attr := range c.MandatoryAttributes {
		switch attr {
		case "delivery", "duration", "preferences", "profile":
		default:
			return fmt.Errorf("%w: unknown mandatory attribute %q", ErrInvalidConfiguration, attr)
		}
	}
	return nil
}

// confidence maps a composite score onto a confidence band. A score
// exactly on HighThreshold is medium, exactly on MediumThreshold is
// medium.
func (c Config) confidence(score float64) core.Confidence {
	switch {
	case score > c.HighThreshold:
		return core.ConfidenceHigh
	case score >= c.MediumThreshold:
		return core.ConfidenceMedium
	default:
		return core.ConfidenceLow
	}
}

// mandatorySet expands MandatoryAttributes into a lookup set.
func (c Config) mandatorySet() map[string]bool {
	if len(c.MandatoryAttributes) == 0 {
		return nil
	}
	set := make(map[string]bool, len(c.MandatoryAttributes))
	for _, attr := range c.MandatoryAttributes {
		set[attr] = true
	}
	return set
}
