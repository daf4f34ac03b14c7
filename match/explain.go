package match

import "github.com/nexusworks/matchpoint/core"

// maxReasons caps the number of human-readable reasons attached to a
// recommendation.
const maxReasons = 4

// matchReasons derives short human-readable explanations from a score
// breakdown, strongest signals first.
func matchReasons(target *core.Entity, breakdown core.ScoreBreakdown) []string {
	reasons := make([]string, 0, maxReasons)
	add := func(reason string) {
		if len(reasons) < maxReasons {
			reasons = append(reasons, reason)
		}
	}

	switch {
	case breakdown.Semantic > 0.7:
		add("Strong skill and expertise alignment")
	case breakdown.Semantic > 0.5:
		add("Good skill compatibility")
	}
	switch {
	case breakdown.TypeMatch >= 1.0:
		add("Perfect fit for your profile")
	case breakdown.TypeMatch > 0.5:
		add("Compatible applicant profile")
	}
	switch {
	case breakdown.Preference >= 1.0:
		add("Matches your stated preferences")
	case breakdown.Preference > 0.5:
		add("Aligns with your interests")
	}
	if d := target.Attributes.Delivery; d == core.DeliveryHybrid || d == core.DeliveryRemote {
		add("Flexible delivery options available")
	}
	if breakdown.Duration >= 1.0 {
		add("Duration matches your availability")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Matches your profile")
	}
	return reasons
}
