package jobs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SyncJobKindRegistry = "registry_sync"

	SyncJobStatusRunning   = "running"
	SyncJobStatusCompleted = "completed"
	SyncJobStatusFailed    = "failed"
)

// SyncJob is the ledger row written once per completed run. ItemsCreated is
// reported equal to ItemsProcessed: the upsert primitive cannot distinguish
// create from update, and the aggregate is the honest number.
type SyncJob struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobKind        string         `gorm:"column:job_kind;not null;index" json:"job_kind"`
	Status         string         `gorm:"column:status;not null;index" json:"status"`
	StartedAt      time.Time      `gorm:"column:started_at;not null" json:"started_at"`
	FinishedAt     *time.Time     `gorm:"column:finished_at" json:"finished_at,omitempty"`
	ItemsProcessed int            `gorm:"column:items_processed;not null;default:0" json:"items_processed"`
	ItemsCreated   int            `gorm:"column:items_created;not null;default:0" json:"items_created"`
	ItemsUpdated   int            `gorm:"column:items_updated;not null;default:0" json:"items_updated"`
	ItemsSkipped   int            `gorm:"column:items_skipped;not null;default:0" json:"items_skipped"`
	Errors         datatypes.JSON `gorm:"column:errors;type:jsonb" json:"errors"`
	Result         datatypes.JSON `gorm:"column:result;type:jsonb" json:"result"`
	CreatedAt      time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (SyncJob) TableName() string { return "sync_job" }
