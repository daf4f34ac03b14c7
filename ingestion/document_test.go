package ingestion

import (
	"strings"
	"testing"

	"github.com/nexusworks/matchpoint/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocuments(t *testing.T) {
	input := `[
		{"id": "ind-1", "name": "Ada", "profile": "researcher/academic",
		 "skills": ["python"], "delivery": "remote", "duration": "short-term"},
		{"name": "Grace", "preferences": ["funding"]}
	]`

	docs, err := ReadDocuments(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "ind-1", docs[0].Id)
	assert.Equal(t, "Grace", docs[1].Name)
}

func TestReadDocumentsInvalidJSON(t *testing.T) {
	_, err := ReadDocuments(strings.NewReader("{not json"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestDocumentToEntity(t *testing.T) {
	doc := Document{
		Id:          " ind-1 ",
		Name:        "Ada Example",
		Profile:     "researcher/academic",
		Skills:      []string{"python", " ", "ml"},
		Preferences: []string{"funding"},
		Delivery:    "online-virtual",
		Duration:    "short-term",
		Status:      "active",
	}

	entity, err := doc.ToEntity(core.EntityTypeIndividual)
	require.NoError(t, err)

	assert.Equal(t, core.EntityID("ind-1"), entity.Id)
	assert.Equal(t, core.EntityTypeIndividual, entity.Type)
	assert.Equal(t, []string{"python", "ml"}, entity.Attributes.Skills)
	assert.Equal(t, core.DeliveryRemote, entity.Attributes.Delivery)
	assert.Equal(t, core.DurationRange{MinMonths: 1, MaxMonths: 3}, entity.Attributes.Duration)
}

func TestDocumentToEntityDerivesMissingId(t *testing.T) {
	doc := Document{Name: "Anonymous", Summary: "some summary text"}

	first, err := doc.ToEntity(core.EntityTypeOrganization)
	require.NoError(t, err)
	second, err := doc.ToEntity(core.EntityTypeOrganization)
	require.NoError(t, err)

	assert.NotEmpty(t, first.Id)
	assert.Equal(t, first.Id, second.Id, "derived ids must be deterministic")

	// Same content under a different type gets a different id.
	other, err := doc.ToEntity(core.EntityTypeIndividual)
	require.NoError(t, err)
	assert.NotEqual(t, first.Id, other.Id)
}

func TestDocumentToEntityInvalid(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		_, err := Document{Id: "x"}.ToEntity(core.EntityTypeIndividual)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("unknown delivery degrades instead of failing", func(t *testing.T) {
		entity, err := Document{Id: "x", Name: "N", Delivery: "carrier-pigeon"}.ToEntity(core.EntityTypeIndividual)
		require.NoError(t, err)
		assert.Equal(t, core.DeliveryUnknown, entity.Attributes.Delivery)
	})
}
