package registry

import (
	"time"

	"github.com/google/uuid"
)

// Occupation is a (standard, occupation label) pair flattened out of the
// standard-detail extract. Uniqueness is the pair.
type Occupation struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StandardID uuid.UUID `gorm:"type:uuid;column:standard_id;not null;uniqueIndex:uq_occupation_standard_label" json:"standard_id"`
	Standard   *Standard `gorm:"foreignKey:StandardID;references:ID" json:"standard,omitempty"`
	Label      string    `gorm:"column:label;not null;uniqueIndex:uq_occupation_standard_label" json:"label"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Occupation) TableName() string { return "occupation" }
