package match

import (
	"strings"

	"github.com/nexusworks/matchpoint/core"
)

// profileCompatibility maps a normalized profile to the applicant type
// tags considered a compatible, but not exact, fit.
var profileCompatibility = map[string][]string{
	"student/early-career":    {"student", "early-career"},
	"professional/consultant": {"professional", "consultant"},
	"researcher/academic":     {"professional", "research", "researcher", "academic", "academic_institution"},
	"entrepreneur/innovator":  {"entrepreneur", "startup", "company", "innovator"},
	"company":                 {"company", "startup", "entrepreneur", "organization"},
	"startup":                 {"startup", "company", "entrepreneur", "organization"},
	"non_profit":              {"non_profit", "nonprofit", "ngo", "organization"},
	"research_center":         {"research_center", "research", "academic_institution", "university"},
	"academic_institution":    {"academic_institution", "research", "university"},
	"government_agency":       {"government_agency", "public", "institution"},
	"public_institution":      {"government_agency", "institution", "public", "research"},
}

// semanticScore clamps a raw cosine similarity into [0, 1]. Negative
// similarities carry no useful ordering signal here and collapse to
// zero.
func semanticScore(raw float32) float64 {
	s := float64(raw)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// typeMatchScore scores how well the candidate's accepted applicant
// types fit the query's profile. The profile appearing verbatim in the
// accepted types scores 1.0, an overlap with the profile's
// compatibility set scores partial, anything else zero. Missing data on
// either side scores zero without filtering.
func typeMatchScore(query, candidate *core.Entity, partial float64) float64 {
	profile, accepted := profileSides(query, candidate)
	profile = normalizeTag(profile)
	if profile == "" || len(accepted) == 0 {
		return 0
	}

	acceptedSet := make(map[string]bool, len(accepted))
	for _, tag := range accepted {
		if tag = normalizeTag(tag); tag != "" {
			acceptedSet[tag] = true
		}
	}
	if len(acceptedSet) == 0 {
		return 0
	}

	if acceptedSet[profile] {
		return 1.0
	}
	for _, tag := range profileCompatibility[profile] {
		if acceptedSet[tag] {
			return partial
		}
	}
	return 0
}

// preferenceScore is the fraction of the query's stated preferences
// satisfied by the candidate's offer tags. A preference is satisfied by
// an equal tag or by a tag that contains it, so "funding" matches
// "funding-opportunity".
func preferenceScore(query, candidate *core.Entity) float64 {
	prefs := query.Attributes.Preferences
	if len(prefs) == 0 {
		return 0
	}
	offers := offerTags(candidate)
	if len(offers) == 0 {
		return 0
	}

	matched := 0
	for _, pref := range prefs {
		pref = normalizeTag(pref)
		if pref == "" {
			continue
		}
		for _, offer := range offers {
			if offer == pref || strings.Contains(offer, pref) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(prefs))
}

// deliveryScore rewards compatible delivery modes: identical known
// modes score 1.0, a hybrid paired with any known mode scores the
// configured hybrid value, everything else zero. Opposed modes never
// reach scoring; eligibility rejects them first.
func deliveryScore(query, candidate *core.Entity, hybrid float64) float64 {
	qd := query.Attributes.Delivery
	cd := candidate.Attributes.Delivery
	if qd == core.DeliveryUnknown || cd == core.DeliveryUnknown {
		return 0
	}
	if qd == cd {
		return 1.0
	}
	if qd == core.DeliveryHybrid || cd == core.DeliveryHybrid {
		return hybrid
	}
	return 0
}

// durationScore is the Jaccard overlap of the two month ranges,
// counting months inclusively. Identical ranges score 1.0, disjoint
// ranges zero, missing ranges zero.
func durationScore(query, candidate *core.Entity) float64 {
	q := query.Attributes.Duration
	c := candidate.Attributes.Duration
	if q.IsZero() || c.IsZero() {
		return 0
	}
	overlap := min(q.MaxMonths, c.MaxMonths) - max(q.MinMonths, c.MinMonths) + 1
	if overlap <= 0 {
		return 0
	}
	union := max(q.MaxMonths, c.MaxMonths) - min(q.MinMonths, c.MinMonths) + 1
	return float64(overlap) / float64(union)
}

// offerTags gathers everything a candidate offers that preferences can
// match against: its interests, skills, accepted applicant types,
// delivery mode, duration category and location, normalized. A
// preference like "remote" is satisfied by the candidate's delivery
// mode, not only by its tag lists.
func offerTags(candidate *core.Entity) []string {
	attrs := candidate.Attributes
	tags := make([]string, 0, len(attrs.Interests)+len(attrs.Skills)+len(attrs.ApplicantTypes)+3)
	for _, group := range [][]string{attrs.Interests, attrs.Skills, attrs.ApplicantTypes} {
		for _, tag := range group {
			if tag = normalizeTag(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	if attrs.Delivery != core.DeliveryUnknown {
		tags = append(tags, attrs.Delivery.String())
	}
	if category := attrs.Duration.Category(); category != "" {
		tags = append(tags, category)
	}
	if location := normalizeTag(attrs.Location); location != "" {
		tags = append(tags, location)
	}
	return tags
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// scoreCandidate computes the full breakdown and weighted composite for
// one eligible pairing.
func scoreCandidate(cfg Config, query, candidate *core.Entity, rawSimilarity float32) (core.ScoreBreakdown, float64) {
	breakdown := core.ScoreBreakdown{
		Semantic:   semanticScore(rawSimilarity),
		TypeMatch:  typeMatchScore(query, candidate, cfg.PartialTypeScore),
		Preference: preferenceScore(query, candidate),
		Delivery:   deliveryScore(query, candidate, cfg.HybridDeliveryScore),
		Duration:   durationScore(query, candidate),
	}
	composite := cfg.Weights.Semantic*breakdown.Semantic +
		cfg.Weights.TypeMatch*breakdown.TypeMatch +
		cfg.Weights.Preference*breakdown.Preference +
		cfg.Weights.Delivery*breakdown.Delivery +
		cfg.Weights.Duration*breakdown.Duration
	return breakdown, composite
}
