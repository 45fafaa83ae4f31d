package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/madfam-org/avala/internal/data/repos"
	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/pkg/logger"
	"github.com/madfam-org/avala/internal/sync/extract"
	"github.com/madfam-org/avala/internal/sync/index"
	"github.com/madfam-org/avala/internal/sync/steps"
)

// ErrNoStandards marks the one hard failure: the mandatory standards extract
// is missing or empty. The run aborts before any write and no ledger row is
// recorded.
var ErrNoStandards = errors.New("mandatory standards extract missing or empty")

type Runner struct {
	DB  *gorm.DB
	Log *logger.Logger

	Sectors        repos.SectorRepo
	Committees     repos.CommitteeRepo
	Standards      repos.StandardRepo
	Certifiers     repos.CertifierRepo
	Centers        repos.CenterRepo
	Occupations    repos.OccupationRepo
	Accreditations repos.AccreditationRepo
	Offerings      repos.OfferingRepo
	SyncJobs       repos.SyncJobRepo

	BatchSize int
}

func NewRunner(db *gorm.DB, baseLog *logger.Logger) *Runner {
	return &Runner{
		DB:  db,
		Log: baseLog.With("component", "SyncRunner"),

		Sectors:        repos.NewSectorRepo(db, baseLog),
		Committees:     repos.NewCommitteeRepo(db, baseLog),
		Standards:      repos.NewStandardRepo(db, baseLog),
		Certifiers:     repos.NewCertifierRepo(db, baseLog),
		Centers:        repos.NewCenterRepo(db, baseLog),
		Occupations:    repos.NewOccupationRepo(db, baseLog),
		Accreditations: repos.NewAccreditationRepo(db, baseLog),
		Offerings:      repos.NewOfferingRepo(db, baseLog),
		SyncJobs:       repos.NewSyncJobRepo(db, baseLog),
	}
}

type RunResult struct {
	Job *types.SyncJob

	Sectors       steps.SectorResolveOutput
	Committees    steps.CommitteeResolveOutput
	Standards     steps.StandardResolveOutput
	Certifiers    steps.CertifierResolveOutput
	Centers       steps.CenterResolveOutput
	Relationships steps.RelationshipBuildOutput
}

// Run executes the full pipeline against the extracts under dir. Steps whose
// source file is absent are skipped; per-record problems are skipped and
// counted. Both still end in a successful ledger entry.
func (r *Runner) Run(ctx context.Context, dir string) (RunResult, error) {
	res := RunResult{}
	if r == nil || r.DB == nil || r.Log == nil {
		return res, fmt.Errorf("sync runner: not initialized")
	}
	startedAt := time.Now().UTC()

	bundle := extract.Load(dir, r.Log)
	if !bundle.HasStandards() {
		return res, ErrNoStandards
	}
	idx := index.Build(bundle)

	var err error
	res.Sectors, err = steps.SectorResolve(ctx, steps.SectorResolveDeps{
		DB: r.DB, Log: r.Log, Sectors: r.Sectors,
	}, steps.SectorResolveInput{Standards: bundle.Standards, BatchSize: r.BatchSize})
	if err != nil {
		return res, err
	}

	res.Committees, err = steps.CommitteeResolve(ctx, steps.CommitteeResolveDeps{
		DB: r.DB, Log: r.Log, Committees: r.Committees,
	}, steps.CommitteeResolveInput{
		Committees: bundle.Committees,
		SectorIDs:  res.Sectors.SectorIDs,
		BatchSize:  r.BatchSize,
	})
	if err != nil {
		return res, err
	}

	res.Standards, err = steps.StandardResolve(ctx, steps.StandardResolveDeps{
		DB: r.DB, Log: r.Log, Standards: r.Standards, Occupations: r.Occupations,
	}, steps.StandardResolveInput{
		Standards:    bundle.Standards,
		Index:        idx,
		SectorIDs:    res.Sectors.SectorIDs,
		CommitteeIDs: res.Committees.CommitteeIDs,
		BatchSize:    r.BatchSize,
	})
	if err != nil {
		return res, err
	}

	res.Certifiers, err = steps.CertifierResolve(ctx, steps.CertifierResolveDeps{
		DB: r.DB, Log: r.Log, Certifiers: r.Certifiers,
	}, steps.CertifierResolveInput{Certifiers: bundle.Certifiers, BatchSize: r.BatchSize})
	if err != nil {
		return res, err
	}

	res.Centers, err = steps.CenterResolve(ctx, steps.CenterResolveDeps{
		DB: r.DB, Log: r.Log, Centers: r.Centers,
	}, steps.CenterResolveInput{Centers: bundle.Centers, BatchSize: r.BatchSize})
	if err != nil {
		return res, err
	}

	res.Relationships, err = steps.RelationshipBuild(ctx, steps.RelationshipBuildDeps{
		DB: r.DB, Log: r.Log,
		Standards: r.Standards, Certifiers: r.Certifiers, Centers: r.Centers,
		Accreditations: r.Accreditations, Offerings: r.Offerings,
	}, steps.RelationshipBuildInput{
		Matrix:    bundle.Matrix,
		Centers:   bundle.Centers,
		BatchSize: r.BatchSize,
	})
	if err != nil {
		return res, err
	}

	job, err := r.writeLedger(ctx, startedAt, &res)
	if err != nil {
		return res, fmt.Errorf("sync runner: write ledger: %w", err)
	}
	res.Job = job

	r.Log.Info("Registry sync completed",
		"items_processed", job.ItemsProcessed,
		"items_skipped", job.ItemsSkipped,
		"duration", time.Since(startedAt).String(),
	)
	return res, nil
}

func (r *Runner) writeLedger(ctx context.Context, startedAt time.Time, res *RunResult) (*types.SyncJob, error) {
	finishedAt := time.Now().UTC()

	processed := res.Sectors.Processed +
		res.Committees.Processed +
		res.Standards.Processed +
		res.Certifiers.Processed +
		res.Centers.Processed +
		res.Relationships.Accreditations.Inserted +
		res.Relationships.Offerings.Inserted +
		res.Standards.OccupationsInserted

	skipped := res.Sectors.Skipped +
		res.Committees.Skipped +
		res.Standards.Skipped +
		res.Certifiers.Skipped +
		res.Centers.Skipped +
		res.Relationships.Accreditations.SkippedUnresolved +
		res.Relationships.Offerings.SkippedUnresolved

	result := map[string]any{
		"sectors": map[string]any{
			"processed": res.Sectors.Processed,
			"skipped":   res.Sectors.Skipped,
		},
		"committees": map[string]any{
			"processed": res.Committees.Processed,
			"skipped":   res.Committees.Skipped,
		},
		"standards": map[string]any{
			"processed":             res.Standards.Processed,
			"skipped":               res.Standards.Skipped,
			"occupations_attempted": res.Standards.OccupationsAttempted,
			"occupations_inserted":  res.Standards.OccupationsInserted,
		},
		"certifiers": map[string]any{
			"processed": res.Certifiers.Processed,
			"skipped":   res.Certifiers.Skipped,
		},
		"centers": map[string]any{
			"processed": res.Centers.Processed,
			"skipped":   res.Centers.Skipped,
		},
		"accreditations": map[string]any{
			"attempted":          res.Relationships.Accreditations.Attempted,
			"inserted":           res.Relationships.Accreditations.Inserted,
			"skipped_unresolved": res.Relationships.Accreditations.SkippedUnresolved,
			"skipped_duplicate":  res.Relationships.Accreditations.SkippedDuplicate,
		},
		"offerings": map[string]any{
			"attempted":          res.Relationships.Offerings.Attempted,
			"inserted":           res.Relationships.Offerings.Inserted,
			"skipped_unresolved": res.Relationships.Offerings.SkippedUnresolved,
			"skipped_duplicate":  res.Relationships.Offerings.SkippedDuplicate,
		},
	}

	// Items created mirrors items processed: the upsert primitive cannot
	// tell creates from updates.
	job := &types.SyncJob{
		JobKind:        types.SyncJobKindRegistry,
		Status:         types.SyncJobStatusCompleted,
		StartedAt:      startedAt,
		FinishedAt:     &finishedAt,
		ItemsProcessed: processed,
		ItemsCreated:   processed,
		ItemsSkipped:   skipped,
		Errors:         datatypes.JSON([]byte(`[]`)),
		Result:         datatypes.JSON(mustJSONRunner(result)),
	}
	return r.SyncJobs.Create(dbctx.Context{Ctx: ctx}, job)
}

func mustJSONRunner(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return b
}
