package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "Profile: Ada | Role: Researcher | Skills: python, ml | Location: remote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %s vs %s", id1, id2)
			}
			if len(id1) != 16 {
				t.Errorf("IDFromContent() produced ID of length %d, want 16", len(id1))
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    EntityType
		wantErr bool
	}{
		{name: "singular individual", input: "individual", want: EntityTypeIndividual},
		{name: "plural individuals", input: "individuals", want: EntityTypeIndividual},
		{name: "organization", input: "organization", want: EntityTypeOrganization},
		{name: "project call plural", input: "project_calls", want: EntityTypeProjectCall},
		{name: "mixed case with spaces", input: "  Individual ", want: EntityTypeIndividual},
		{name: "unknown", input: "robot", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntityType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseEntityType(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEntityType(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseEntityType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEntityType_String_RoundTrip(t *testing.T) {
	for _, et := range []EntityType{EntityTypeIndividual, EntityTypeOrganization, EntityTypeProjectCall} {
		parsed, err := ParseEntityType(et.String())
		if err != nil {
			t.Fatalf("ParseEntityType(%q) unexpected error: %v", et.String(), err)
		}
		if parsed != et {
			t.Errorf("round trip for %v produced %v", et, parsed)
		}
	}
}

func TestParseDeliveryMode(t *testing.T) {
	tests := []struct {
		input string
		want  DeliveryMode
	}{
		{input: "remote", want: DeliveryRemote},
		{input: "online-virtual", want: DeliveryRemote},
		{input: "in-person", want: DeliveryInPerson},
		{input: "onsite", want: DeliveryInPerson},
		{input: "Hybrid", want: DeliveryHybrid},
		{input: "", want: DeliveryUnknown},
		{input: "carrier pigeon", want: DeliveryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseDeliveryMode(tt.input); got != tt.want {
				t.Errorf("ParseDeliveryMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDurationRangeFromCategory(t *testing.T) {
	tests := []struct {
		category string
		want     DurationRange
	}{
		{category: "short-term", want: DurationRange{MinMonths: 1, MaxMonths: 3}},
		{category: "medium-term", want: DurationRange{MinMonths: 4, MaxMonths: 9}},
		{category: "long-term", want: DurationRange{MinMonths: 10, MaxMonths: 36}},
		{category: "unknown", want: DurationRange{}},
		{category: "", want: DurationRange{}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := DurationRangeFromCategory(tt.category)
			if got != tt.want {
				t.Errorf("DurationRangeFromCategory(%q) = %+v, want %+v", tt.category, got, tt.want)
			}
		})
	}
}

func TestDurationRange_Category(t *testing.T) {
	tests := []struct {
		r    DurationRange
		want string
	}{
		{r: DurationRange{MinMonths: 1, MaxMonths: 3}, want: "short-term"},
		{r: DurationRange{MinMonths: 3, MaxMonths: 3}, want: "short-term"},
		{r: DurationRange{MinMonths: 4, MaxMonths: 9}, want: "medium-term"},
		{r: DurationRange{MinMonths: 10, MaxMonths: 36}, want: "long-term"},
		{r: DurationRange{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.r.Category(); got != tt.want {
				t.Errorf("Category(%+v) = %q, want %q", tt.r, got, tt.want)
			}
		})
	}
}

func TestDurationRange_IsZero(t *testing.T) {
	if !(DurationRange{}).IsZero() {
		t.Error("zero range should report IsZero")
	}
	if (DurationRange{MinMonths: 3, MaxMonths: 3}).IsZero() {
		t.Error("non-zero range should not report IsZero")
	}
}
