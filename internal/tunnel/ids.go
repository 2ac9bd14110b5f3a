package tunnel

import "github.com/google/uuid"

// IDGenerator returns globally unique opaque request identifiers, assigned
// once per accepted connection.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates identifiers with a random (v4) UUID, matching the
// original source's request_id.rs (uuid::Uuid::new_v4().to_hyphenated()).
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
