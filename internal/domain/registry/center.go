package registry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Center is an evaluation center. Carries the same dedup metadata as
// Certifier.
type Center struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CenterKey     string         `gorm:"column:center_key;not null;uniqueIndex" json:"center_key"`
	Name          string         `gorm:"column:name;not null" json:"name"`
	AltNames      datatypes.JSON `gorm:"column:alt_names;type:jsonb" json:"alt_names,omitempty"`
	NormalizedKey *string        `gorm:"column:normalized_key;index" json:"normalized_key,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Center) TableName() string { return "center" }
