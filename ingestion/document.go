package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nexusworks/matchpoint/core"
)

// Document is the external JSON shape of one entity record. It is the
// loosely typed form data arrives in; ToEntity converts and validates
// it into the domain model.
type Document struct {
	Id             string   `json:"id"`
	Name           string   `json:"name"`
	Profile        string   `json:"profile"`
	Skills         []string `json:"skills"`
	Interests      []string `json:"interests"`
	Preferences    []string `json:"preferences"`
	ApplicantTypes []string `json:"applicantTypes"`
	Delivery       string   `json:"delivery"`
	Duration       string   `json:"duration"`
	Location       string   `json:"location"`
	Status         string   `json:"status"`
	Summary        string   `json:"summary"`
}

// ReadDocuments decodes a JSON array of documents.
func ReadDocuments(r io.Reader) ([]Document, error) {
	var docs []Document
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return docs, nil
}

// ToEntity converts the document into a validated entity of the given
// type. Documents without an id get a deterministic content-derived
// one, so re-ingesting the same file updates rather than duplicates.
func (d Document) ToEntity(entityType core.EntityType) (*core.Entity, error) {
	id := core.EntityID(strings.TrimSpace(d.Id))
	if id == "" {
		id = core.IDFromContent(entityType.String() + "|" + d.Name + "|" + d.Summary)
	}

	entity := &core.Entity{
		Id:   id,
		Type: entityType,
		Name: strings.TrimSpace(d.Name),
		Attributes: core.Attributes{
			Profile:        strings.TrimSpace(d.Profile),
			Skills:         cleanList(d.Skills),
			Interests:      cleanList(d.Interests),
			Preferences:    cleanList(d.Preferences),
			ApplicantTypes: cleanList(d.ApplicantTypes),
			Delivery:       core.ParseDeliveryMode(d.Delivery),
			Duration:       core.DurationRangeFromCategory(d.Duration),
			Location:       strings.TrimSpace(d.Location),
			Status:         strings.TrimSpace(d.Status),
			Summary:        strings.TrimSpace(d.Summary),
		},
	}

	if err := core.ValidateEntity(entity); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return entity, nil
}

func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}
