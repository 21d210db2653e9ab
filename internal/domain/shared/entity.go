package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides the common identity and timestamp fields shared by all
// persisted records. IDs are store-assigned and opaque to callers.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a new base entity with a generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
