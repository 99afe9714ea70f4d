package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the surrogate key and audit timestamps of UUID-keyed aggregates.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity returns an entity stamped with a fresh ID and the current time.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// IsNew reports whether the entity has not been assigned an ID yet.
func (e *BaseEntity) IsNew() bool {
	return e.ID == uuid.Nil
}

// Touch bumps UpdatedAt.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}
