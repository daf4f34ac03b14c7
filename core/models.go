package core

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// EntityID is a unique identifier for a domain entity.
// Identifiers are assigned by the upstream pipeline and are unique within
// their entity-type namespace. IDFromContent derives a deterministic fallback
// for records that arrive without one.
type EntityID string

// IDFromContent generates a deterministic EntityID from text content using
// BLAKE2b hashing. Identical content always produces the same ID.
func IDFromContent(text string) EntityID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], binary.LittleEndian.Uint64(sum))
	return EntityID(hex.EncodeToString(buf[:]))
}

// EntityType identifies the kind of entity in the matching domain.
type EntityType int

const (
	// EntityTypeIndividual represents a person seeking opportunities.
	EntityTypeIndividual EntityType = iota + 1
	// EntityTypeOrganization represents a company, institution or NGO.
	EntityTypeOrganization
	// EntityTypeProjectCall represents an open project call or opportunity.
	EntityTypeProjectCall
)

// String returns the canonical name for the entity type.
func (t EntityType) String() string {
	switch t {
	case EntityTypeIndividual:
		return "individual"
	case EntityTypeOrganization:
		return "organization"
	case EntityTypeProjectCall:
		return "project_call"
	default:
		return "unknown"
	}
}

// ParseEntityType parses a canonical entity type name.
// Accepts both singular and the plural forms used by upstream data files.
func ParseEntityType(s string) (EntityType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "individual", "individuals":
		return EntityTypeIndividual, nil
	case "organization", "organizations":
		return EntityTypeOrganization, nil
	case "project_call", "project_calls", "project":
		return EntityTypeProjectCall, nil
	default:
		return 0, ErrInvalidEntityType
	}
}

// MarshalJSON encodes the entity type as its canonical name.
func (t EntityType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an entity type from its canonical name.
func (t *EntityType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseEntityType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DeliveryMode describes how an engagement is delivered.
type DeliveryMode int

const (
	// DeliveryUnknown means no delivery mode was specified.
	DeliveryUnknown DeliveryMode = iota
	// DeliveryRemote means fully remote participation.
	DeliveryRemote
	// DeliveryInPerson means on-site participation.
	DeliveryInPerson
	// DeliveryHybrid means a mix of remote and on-site participation.
	DeliveryHybrid
)

// String returns the canonical name for the delivery mode.
func (d DeliveryMode) String() string {
	switch d {
	case DeliveryRemote:
		return "remote"
	case DeliveryInPerson:
		return "in-person"
	case DeliveryHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// ParseDeliveryMode parses a delivery mode name.
// Accepts the upstream variants "online-virtual" and "onsite".
func ParseDeliveryMode(s string) DeliveryMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "remote", "online", "online-virtual", "virtual":
		return DeliveryRemote
	case "in-person", "inperson", "onsite", "on-site":
		return DeliveryInPerson
	case "hybrid":
		return DeliveryHybrid
	default:
		return DeliveryUnknown
	}
}

// DurationRange is an inclusive engagement duration expressed in months.
// The zero value means no duration was specified.
type DurationRange struct {
	MinMonths int
	MaxMonths int
}

// IsZero reports whether no duration was specified.
func (d DurationRange) IsZero() bool {
	return d.MinMonths == 0 && d.MaxMonths == 0
}

// Category maps the range back to its duration category by the upper
// bound: up to 3 months is short-term, up to 9 medium-term, anything
// longer long-term. The zero range has no category.
func (d DurationRange) Category() string {
	switch {
	case d.IsZero():
		return ""
	case d.MaxMonths <= 3:
		return "short-term"
	case d.MaxMonths <= 9:
		return "medium-term"
	default:
		return "long-term"
	}
}

// DurationRangeFromCategory maps the upstream duration categories to month
// ranges: short-term up to 3 months, medium-term 4-9, long-term 10-36.
func DurationRangeFromCategory(category string) DurationRange {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "short-term", "short":
		return DurationRange{MinMonths: 1, MaxMonths: 3}
	case "medium-term", "medium":
		return DurationRange{MinMonths: 4, MaxMonths: 9}
	case "long-term", "long":
		return DurationRange{MinMonths: 10, MaxMonths: 36}
	default:
		return DurationRange{}
	}
}

// Attributes holds the structured, filterable attributes of an entity.
// Missing values degrade the corresponding factor score rather than failing
// a match.
type Attributes struct {
	Profile        string // fine-grained kind, e.g. "researcher/academic"
	Skills         []string
	Interests      []string
	Preferences    []string // what the entity is seeking
	ApplicantTypes []string // project side: who may apply
	Delivery       DeliveryMode
	Duration       DurationRange
	Location       string
	Status         string // project side: lifecycle status, e.g. "active"
	Summary        string // free-text profile summary
}

// Entity is a validated structured record for an individual, organization or
// project call. Text is the normalized representation built by the ingestion
// pipeline; Vector is its unit embedding.
type Entity struct {
	Id         EntityID
	Type       EntityType
	Name       string
	Attributes Attributes
	Text       string
	Vector     []float32
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// CandidateMatch is one nearest-neighbor hit for a query, as returned by the
// similarity index. Ephemeral, produced per query.
type CandidateMatch struct {
	CandidateId   EntityID
	RawSimilarity float32
}

// ScoreBreakdown holds the five normalized factor scores, each in [0,1].
// The factor set is closed; adding a factor means touching every scorer.
type ScoreBreakdown struct {
	Semantic   float64 `json:"semantic"`
	TypeMatch  float64 `json:"type_match"`
	Preference float64 `json:"preference"`
	Delivery   float64 `json:"delivery"`
	Duration   float64 `json:"duration"`
}

// Confidence is the coarse three-tier classification of a composite score.
type Confidence string

const (
	// ConfidenceHigh marks composite scores strictly above the high threshold.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium marks scores between the medium and high thresholds,
	// both bounds inclusive.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow marks scores strictly below the medium threshold.
	ConfidenceLow Confidence = "low"
)

// Recommendation is one ranked match for a query entity. Recommendations are
// produced fresh on every matching run and never mutated after creation.
// Ordering within a result set is by descending CompositeScore, ties broken
// by ascending TargetId.
type Recommendation struct {
	SourceId       EntityID       `json:"source_id"`
	TargetId       EntityID       `json:"target_id"`
	CompositeScore float64        `json:"composite_score"`
	Confidence     Confidence     `json:"confidence"`
	Breakdown      ScoreBreakdown `json:"breakdown"`
	Reasons        []string       `json:"reasons,omitempty"`
	Rank           int            `json:"rank"`
}
