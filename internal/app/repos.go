package app

import (
	"gorm.io/gorm"

	"github.com/madfam-org/avala/internal/data/repos"
	"github.com/madfam-org/avala/internal/pkg/logger"
)

type Repos struct {
	Sector        repos.SectorRepo
	Committee     repos.CommitteeRepo
	Standard      repos.StandardRepo
	Certifier     repos.CertifierRepo
	Center        repos.CenterRepo
	Occupation    repos.OccupationRepo
	Accreditation repos.AccreditationRepo
	Offering      repos.OfferingRepo
	SyncJob       repos.SyncJobRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Sector:        repos.NewSectorRepo(db, log),
		Committee:     repos.NewCommitteeRepo(db, log),
		Standard:      repos.NewStandardRepo(db, log),
		Certifier:     repos.NewCertifierRepo(db, log),
		Center:        repos.NewCenterRepo(db, log),
		Occupation:    repos.NewOccupationRepo(db, log),
		Accreditation: repos.NewAccreditationRepo(db, log),
		Offering:      repos.NewOfferingRepo(db, log),
		SyncJob:       repos.NewSyncJobRepo(db, log),
	}
}
