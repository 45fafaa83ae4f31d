package domain

import (
	"github.com/madfam-org/avala/internal/domain/jobs"
	"github.com/madfam-org/avala/internal/domain/registry"
)

type Sector = registry.Sector
type Committee = registry.Committee
type Standard = registry.Standard
type Certifier = registry.Certifier
type Center = registry.Center
type Occupation = registry.Occupation
type Accreditation = registry.Accreditation
type Offering = registry.Offering

type SyncJob = jobs.SyncJob

const (
	SectorKindProductive = registry.SectorKindProductive

	CertifierKindPublic  = registry.CertifierKindPublic
	CertifierKindPrivate = registry.CertifierKindPrivate

	SyncJobKindRegistry    = jobs.SyncJobKindRegistry
	SyncJobStatusRunning   = jobs.SyncJobStatusRunning
	SyncJobStatusCompleted = jobs.SyncJobStatusCompleted
	SyncJobStatusFailed    = jobs.SyncJobStatusFailed
)
