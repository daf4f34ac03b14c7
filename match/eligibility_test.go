package match

import (
	"testing"

	"github.com/nexusworks/matchpoint/core"
	"github.com/stretchr/testify/assert"
)

func TestEligibleHardRules(t *testing.T) {
	tests := []struct {
		name      string
		query     *core.Entity
		candidate *core.Entity
		want      bool
	}{
		{
			name:      "different types pass",
			query:     individual(core.Attributes{}),
			candidate: projectCall(core.Attributes{}),
			want:      true,
		},
		{
			name:      "same type rejected",
			query:     individual(core.Attributes{}),
			candidate: &core.Entity{Id: "ind-2", Type: core.EntityTypeIndividual},
			want:      false,
		},
		{
			name:      "inactive project call rejected",
			query:     individual(core.Attributes{}),
			candidate: projectCall(core.Attributes{Status: "closed"}),
			want:      false,
		},
		{
			name:      "status comparison is case-insensitive",
			query:     individual(core.Attributes{}),
			candidate: projectCall(core.Attributes{Status: "Active"}),
			want:      true,
		},
		{
			name:      "empty status treated as active",
			query:     individual(core.Attributes{}),
			candidate: projectCall(core.Attributes{Status: ""}),
			want:      true,
		},
		{
			name:      "remote query against in-person candidate rejected",
			query:     individual(core.Attributes{Delivery: core.DeliveryRemote}),
			candidate: projectCall(core.Attributes{Delivery: core.DeliveryInPerson}),
			want:      false,
		},
		{
			name:      "in-person query against remote candidate rejected",
			query:     individual(core.Attributes{Delivery: core.DeliveryInPerson}),
			candidate: projectCall(core.Attributes{Delivery: core.DeliveryRemote}),
			want:      false,
		},
		{
			name:      "hybrid bridges remote and in-person",
			query:     individual(core.Attributes{Delivery: core.DeliveryHybrid}),
			candidate: projectCall(core.Attributes{Delivery: core.DeliveryInPerson}),
			want:      true,
		},
		{
			name:      "unknown delivery fails open",
			query:     individual(core.Attributes{Delivery: core.DeliveryRemote}),
			candidate: projectCall(core.Attributes{}),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eligible(tt.query, tt.candidate, nil))
		})
	}
}

func TestEligibleMandatoryAttributes(t *testing.T) {
	full := core.Attributes{
		Profile:     "student/early-career",
		Preferences: []string{"funding"},
		Delivery:    core.DeliveryRemote,
		Duration:    core.DurationRange{MinMonths: 1, MaxMonths: 3},
	}
	candidateFull := core.Attributes{
		ApplicantTypes: []string{"student"},
		Interests:      []string{"funding"},
		Delivery:       core.DeliveryRemote,
		Duration:       core.DurationRange{MinMonths: 1, MaxMonths: 3},
	}

	tests := []struct {
		name      string
		mandatory map[string]bool
		strip     func(*core.Attributes)
		want      bool
	}{
		{
			name:      "all attributes present",
			mandatory: map[string]bool{"delivery": true, "duration": true, "preferences": true, "profile": true},
			strip:     func(*core.Attributes) {},
			want:      true,
		},
		{
			name:      "missing delivery rejected when mandatory",
			mandatory: map[string]bool{"delivery": true},
			strip:     func(a *core.Attributes) { a.Delivery = core.DeliveryUnknown },
			want:      false,
		},
		{
			name:      "missing duration rejected when mandatory",
			mandatory: map[string]bool{"duration": true},
			strip:     func(a *core.Attributes) { a.Duration = core.DurationRange{} },
			want:      false,
		},
		{
			name:      "missing applicant types rejected when profile mandatory",
			mandatory: map[string]bool{"profile": true},
			strip:     func(a *core.Attributes) { a.ApplicantTypes = nil },
			want:      false,
		},
		{
			name:      "missing offers rejected when preferences mandatory",
			mandatory: map[string]bool{"preferences": true},
			strip: func(a *core.Attributes) {
				a.Interests = nil
				a.ApplicantTypes = nil
			},
			want: false,
		},
		{
			name:      "missing duration passes when not mandatory",
			mandatory: map[string]bool{"delivery": true},
			strip:     func(a *core.Attributes) { a.Duration = core.DurationRange{} },
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := candidateFull
			tt.strip(&attrs)
			assert.Equal(t, tt.want, eligible(individual(full), projectCall(attrs), tt.mandatory))
		})
	}
}
