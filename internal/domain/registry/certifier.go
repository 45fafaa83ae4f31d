package registry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	CertifierKindPublic  = "public"
	CertifierKindPrivate = "private"
)

// Certifier is a certifying body. AltNames and NormalizedKey are dedup
// metadata produced by the upstream extractor; they stay nil until a
// downstream fuzzy-matching pass populates or consumes them.
type Certifier struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CertifierKey  string         `gorm:"column:certifier_key;not null;uniqueIndex" json:"certifier_key"`
	Name          string         `gorm:"column:name;not null" json:"name"`
	Kind          string         `gorm:"column:kind;not null;default:'private'" json:"kind"`
	AltNames      datatypes.JSON `gorm:"column:alt_names;type:jsonb" json:"alt_names,omitempty"`
	NormalizedKey *string        `gorm:"column:normalized_key;index" json:"normalized_key,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Certifier) TableName() string { return "certifier" }
