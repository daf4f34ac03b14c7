package badger

import (
	"fmt"

	"github.com/nexusworks/matchpoint/core"
)

// Key prefixes for different data types
const (
	entityRecordPrefix = "entrec"
)

// makeEntityKey generates a key for an entity by type and ID.
// Format: entrec:<type>:<id>
func makeEntityKey(entityType core.EntityType, id core.EntityID) []byte {
	return []byte(fmt.Sprintf("%s:%d:%s", entityRecordPrefix, entityType, id))
}

// makeEntityTypePrefix generates the common prefix for all entities of a type.
// Keys within a prefix sort lexicographically by ID.
func makeEntityTypePrefix(entityType core.EntityType) []byte {
	return []byte(fmt.Sprintf("%s:%d:", entityRecordPrefix, entityType))
}
