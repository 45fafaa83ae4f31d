package registry

import (
	"time"

	"github.com/google/uuid"
)

// Committee is an oversight committee ("comité de gestión"). Upserted by
// CommitteeKey. The sector link is nullable: the registries do not guarantee
// every committee declares a sector the standard extract knows about.
type Committee struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CommitteeKey string     `gorm:"column:committee_key;not null;uniqueIndex" json:"committee_key"`
	Name         string     `gorm:"column:name;not null" json:"name"`
	President    string     `gorm:"column:president" json:"president,omitempty"`
	Secretary    string     `gorm:"column:secretary" json:"secretary,omitempty"`
	Email        string     `gorm:"column:email" json:"email,omitempty"`
	Phone        string     `gorm:"column:phone" json:"phone,omitempty"`
	Street       string     `gorm:"column:street" json:"street,omitempty"`
	City         string     `gorm:"column:city" json:"city,omitempty"`
	State        string     `gorm:"column:state" json:"state,omitempty"`
	PostalCode   string     `gorm:"column:postal_code" json:"postal_code,omitempty"`
	SectorID     *uuid.UUID `gorm:"type:uuid;column:sector_id;index" json:"sector_id,omitempty"`
	Sector       *Sector    `gorm:"foreignKey:SectorID;references:ID" json:"sector,omitempty"`
	RegisteredAt *time.Time `gorm:"column:registered_at" json:"registered_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Committee) TableName() string { return "committee" }
