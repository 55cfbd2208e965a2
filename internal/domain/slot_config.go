package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlotConfig sets the step between candidate start times.
// Supports hierarchical configuration:
// 1. Service-specific (service_id)
// 2. Global (NULL)
type SlotConfig struct {
	ID          int64
	ServiceID   *uuid.UUID // NULL = config for all services
	StepMinutes int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsGlobal returns true if this is the configuration for all services
func (c *SlotConfig) IsGlobal() bool {
	return c.ServiceID == nil
}

func (c *SlotConfig) Step() time.Duration {
	return time.Duration(c.StepMinutes) * time.Minute
}
