package registry

import (
	"time"

	"github.com/google/uuid"
)

// Offering asserts a center administers assessment for a standard.
// Uniqueness is the (center, standard) pair.
type Offering struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CenterID   uuid.UUID `gorm:"type:uuid;column:center_id;not null;uniqueIndex:uq_offering_center_standard" json:"center_id"`
	Center     *Center   `gorm:"foreignKey:CenterID;references:ID" json:"center,omitempty"`
	StandardID uuid.UUID `gorm:"type:uuid;column:standard_id;not null;uniqueIndex:uq_offering_center_standard" json:"standard_id"`
	Standard   *Standard `gorm:"foreignKey:StandardID;references:ID" json:"standard,omitempty"`
	Active     bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Offering) TableName() string { return "offering" }
