package registry

import (
	"time"

	"github.com/google/uuid"
)

// Accreditation asserts a certifier is authorized to certify a standard.
// Uniqueness is the (standard, certifier) pair.
type Accreditation struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StandardID  uuid.UUID  `gorm:"type:uuid;column:standard_id;not null;uniqueIndex:uq_accreditation_standard_certifier" json:"standard_id"`
	Standard    *Standard  `gorm:"foreignKey:StandardID;references:ID" json:"standard,omitempty"`
	CertifierID uuid.UUID  `gorm:"type:uuid;column:certifier_id;not null;uniqueIndex:uq_accreditation_standard_certifier" json:"certifier_id"`
	Certifier   *Certifier `gorm:"foreignKey:CertifierID;references:ID" json:"certifier,omitempty"`
	Valid       bool       `gorm:"column:valid;not null;default:true" json:"valid"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (Accreditation) TableName() string { return "accreditation" }
