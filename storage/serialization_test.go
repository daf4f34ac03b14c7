package storage

import (
	"testing"
	"time"

	"github.com/nexusworks/matchpoint/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalEntity(t *testing.T) {
	entity := &core.Entity{
		Id:   "ind-042",
		Type: core.EntityTypeIndividual,
		Name: "Ada Lovelace",
		Attributes: core.Attributes{
			Profile:        "researcher/academic",
			Skills:         []string{"python", "ml"},
			Interests:      []string{"health"},
			Preferences:    []string{"collaboration", "funding"},
			ApplicantTypes: nil,
			Delivery:       core.DeliveryRemote,
			Duration:       core.DurationRange{MinMonths: 3, MaxMonths: 3},
			Location:       "lisbon",
			Summary:        "Researcher working on clinical ML.",
		},
		Text:       "Profile: Ada Lovelace | Skills: python, ml",
		Vector:     []float32{0.6, 0.8, 0},
		InsertedAt: time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	data := MarshalEntity(entity)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalEntity(data)
	require.NoError(t, err)
	assert.Equal(t, entity.Id, decoded.Id)
	assert.Equal(t, entity.Type, decoded.Type)
	assert.Equal(t, entity.Name, decoded.Name)
	assert.Equal(t, entity.Attributes, decoded.Attributes)
	assert.Equal(t, entity.Text, decoded.Text)
	assert.Equal(t, entity.Vector, decoded.Vector)
	assert.True(t, entity.InsertedAt.Equal(decoded.InsertedAt))
	assert.True(t, entity.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestUnmarshalEntity_Truncated(t *testing.T) {
	entity := &core.Entity{Id: "x", Type: core.EntityTypeProjectCall, Name: "Project"}
	data := MarshalEntity(entity)

	_, err := UnmarshalEntity(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalEntityID(t *testing.T) {
	for _, id := range []core.EntityID{"", "ind-001", core.IDFromContent("some text")} {
		data := MarshalEntityID(id)
		decoded, err := UnmarshalEntityID(data)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}
