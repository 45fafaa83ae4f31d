package repos

import (
	"gorm.io/gorm"

	"github.com/madfam-org/avala/internal/data/repos/jobs"
	"github.com/madfam-org/avala/internal/data/repos/registry"
	"github.com/madfam-org/avala/internal/pkg/logger"
)

type SectorRepo = registry.SectorRepo
type CommitteeRepo = registry.CommitteeRepo
type StandardRepo = registry.StandardRepo
type CertifierRepo = registry.CertifierRepo
type CenterRepo = registry.CenterRepo
type OccupationRepo = registry.OccupationRepo
type AccreditationRepo = registry.AccreditationRepo
type OfferingRepo = registry.OfferingRepo

type SyncJobRepo = jobs.SyncJobRepo

func NewSectorRepo(db *gorm.DB, baseLog *logger.Logger) SectorRepo {
	return registry.NewSectorRepo(db, baseLog)
}
func NewCommitteeRepo(db *gorm.DB, baseLog *logger.Logger) CommitteeRepo {
	return registry.NewCommitteeRepo(db, baseLog)
}
func NewStandardRepo(db *gorm.DB, baseLog *logger.Logger) StandardRepo {
	return registry.NewStandardRepo(db, baseLog)
}
func NewCertifierRepo(db *gorm.DB, baseLog *logger.Logger) CertifierRepo {
	return registry.NewCertifierRepo(db, baseLog)
}
func NewCenterRepo(db *gorm.DB, baseLog *logger.Logger) CenterRepo {
	return registry.NewCenterRepo(db, baseLog)
}
func NewOccupationRepo(db *gorm.DB, baseLog *logger.Logger) OccupationRepo {
	return registry.NewOccupationRepo(db, baseLog)
}
func NewAccreditationRepo(db *gorm.DB, baseLog *logger.Logger) AccreditationRepo {
	return registry.NewAccreditationRepo(db, baseLog)
}
func NewOfferingRepo(db *gorm.DB, baseLog *logger.Logger) OfferingRepo {
	return registry.NewOfferingRepo(db, baseLog)
}
func NewSyncJobRepo(db *gorm.DB, baseLog *logger.Logger) SyncJobRepo {
	return jobs.NewSyncJobRepo(db, baseLog)
}
