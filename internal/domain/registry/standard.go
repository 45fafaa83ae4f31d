package registry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Standard is a competency standard, keyed by its published code
// (format XX####, optionally followed by .##, e.g. EC0249 or NUGCH001.01).
//
// CommitteeID comes from the committee extract's embedded standard listings;
// SectorID from the standard's own declared sector. The two are resolved
// independently and may disagree; neither wins.
type Standard struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code        string         `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Level       int            `gorm:"column:level;not null;default:0" json:"level"`
	Active      bool           `gorm:"column:active;not null;default:true" json:"active"`
	CommitteeID *uuid.UUID     `gorm:"type:uuid;column:committee_id;index" json:"committee_id,omitempty"`
	Committee   *Committee     `gorm:"foreignKey:CommitteeID;references:ID" json:"committee,omitempty"`
	SectorID    *uuid.UUID     `gorm:"type:uuid;column:sector_id;index" json:"sector_id,omitempty"`
	Sector      *Sector        `gorm:"foreignKey:SectorID;references:ID" json:"sector,omitempty"`
	Metadata    datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	Source      string         `gorm:"column:source" json:"source,omitempty"`
	Fingerprint string         `gorm:"column:fingerprint" json:"fingerprint,omitempty"`
	SyncedAt    time.Time      `gorm:"column:synced_at" json:"synced_at"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Standard) TableName() string { return "standard" }
