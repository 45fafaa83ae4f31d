package registry

import (
	"time"

	"github.com/google/uuid"
)

// Sector is the productive-sector dimension derived from standard records.
// SectorKey is the natural key published by the registry.
type Sector struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SectorKey int       `gorm:"column:sector_key;not null;uniqueIndex" json:"sector_key"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Kind      string    `gorm:"column:kind;not null;default:'productive'" json:"kind"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Sector) TableName() string { return "sector" }

const SectorKindProductive = "productive"
