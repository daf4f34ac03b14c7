package match

import (
	"strings"

	"github.com/nexusworks/matchpoint/core"
)

// activeStatus is the only project call status that passes the hard
// filter. Comparison is case-insensitive; an empty status is treated as
// active.
const activeStatus = "active"

// eligible reports whether a candidate may be scored against the query.
// Hard rules reject same-type pairings, inactive project calls and
// strictly opposed delivery modes. Attributes missing on either side
// fail open unless listed as mandatory.
func eligible(query, candidate *core.Entity, mandatory map[string]bool) bool {
	if query.Type == candidate.Type {
		return false
	}
	if !statusEligible(query) || !statusEligible(candidate) {
		return false
	}
	if !deliveryEligible(query, candidate, mandatory["delivery"]) {
		return false
	}
	if mandatory["duration"] &&
		(query.Attributes.Duration.IsZero() || candidate.Attributes.Duration.IsZero()) {
		return false
	}
	if mandatory["preferences"] &&
		(len(query.Attributes.Preferences) == 0 || len(offerTags(candidate)) == 0) {
		return false
	}
	if mandatory["profile"] {
		profile, accepted := profileSides(query, candidate)
		if profile == "" || len(accepted) == 0 {
			return false
		}
	}
	return true
}

func statusEligible(e *core.Entity) bool {
	if e.Type != core.EntityTypeProjectCall {
		return true
	}
	status := strings.ToLower(strings.TrimSpace(e.Attributes.Status))
	return status == "" || status == activeStatus
}

// deliveryEligible rejects remote/in-person opposites. Hybrid is
// compatible with everything; unknown modes pass unless delivery is
// mandatory.
func deliveryEligible(query, candidate *core.Entity, mandatory bool) bool {
	qd := query.Attributes.Delivery
	cd := candidate.Attributes.Delivery
	if qd == core.DeliveryUnknown || cd == core.DeliveryUnknown {
		return !mandatory
	}
	if qd == core.DeliveryRemote && cd == core.DeliveryInPerson {
		return false
	}
	if qd == core.DeliveryInPerson && cd == core.DeliveryRemote {
		return false
	}
	return true
}

// profileSides orients a pairing: one side carries a profile, the other
// a list of accepted applicant types. Project calls are always the
// accepting side. An accepting side without an applicant type list
// falls back to its own profile, which covers organization candidates.
func profileSides(query, candidate *core.Entity) (profile string, accepted []string) {
	profSide, accSide := query, candidate
	if query.Type == core.EntityTypeProjectCall {
		profSide, accSide = candidate, query
	}
	accepted = accSide.Attributes.ApplicantTypes
	if len(accepted) == 0 && accSide.Attributes.Profile != "" {
		accepted = []string{accSide.Attributes.Profile}
	}
	return profSide.Attributes.Profile, accepted
}
