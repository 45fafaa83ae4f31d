package steps

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/madfam-org/avala/internal/data/repos"
	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/pkg/logger"
	"github.com/madfam-org/avala/internal/sync/extract"
)

type RelationshipBuildDeps struct {
	DB             *gorm.DB
	Log            *logger.Logger
	Standards      repos.StandardRepo
	Certifiers     repos.CertifierRepo
	Centers        repos.CenterRepo
	Accreditations repos.AccreditationRepo
	Offerings      repos.OfferingRepo
}

type RelationshipBuildInput struct {
	// Matrix maps a standard code to the certifier ids accredited for it.
	Matrix map[string][]string
	// Centers carry their offered standard codes embedded.
	Centers   []extract.CenterRecord
	BatchSize int
}

// PassCounts accounts for one cross-reference pass. Every attempted pair is
// either inserted, skipped because one side did not resolve, or skipped as a
// duplicate of an existing row:
// Attempted == Inserted + SkippedUnresolved + SkippedDuplicate.
type PassCounts struct {
	Attempted         int
	Inserted          int
	SkippedUnresolved int
	SkippedDuplicate  int
}

type RelationshipBuildOutput struct {
	Accreditations PassCounts
	Offerings      PassCounts
}

// RelationshipBuild populates the accreditation and offering joins. Identity
// maps are fetched fresh from the store rather than reused from earlier
// in-memory state: this step may run as a separate invocation. Unresolved
// sides are skipped and counted, never fatal.
func RelationshipBuild(ctx context.Context, deps RelationshipBuildDeps, in RelationshipBuildInput) (RelationshipBuildOutput, error) {
	out := RelationshipBuildOutput{}
	if deps.DB == nil || deps.Log == nil || deps.Standards == nil || deps.Certifiers == nil ||
		deps.Centers == nil || deps.Accreditations == nil || deps.Offerings == nil {
		return out, fmt.Errorf("relationship_build: missing deps")
	}
	log := deps.Log.With("step", "relationship_build")
	dbc := dbctx.Context{Ctx: ctx}

	standardIDs, err := deps.Standards.MapByCode(dbc)
	if err != nil {
		return out, fmt.Errorf("relationship_build: map standards: %w", err)
	}
	certifierIDs, err := deps.Certifiers.MapByCertifierKey(dbc)
	if err != nil {
		return out, fmt.Errorf("relationship_build: map certifiers: %w", err)
	}
	centerIDs, err := deps.Centers.MapByCenterKey(dbc)
	if err != nil {
		return out, fmt.Errorf("relationship_build: map centers: %w", err)
	}
	batchSize := batchSizeOrDefault(in.BatchSize)

	// Accreditation pass: standard code -> set of certifier ids.
	accRows := make([]*types.Accreditation, 0)
	codes := make([]string, 0, len(in.Matrix))
	for code := range in.Matrix {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		standardID, standardOK := standardIDs[strings.TrimSpace(code)]
		for _, certKey := range in.Matrix[code] {
			out.Accreditations.Attempted++
			if !standardOK {
				out.Accreditations.SkippedUnresolved++
				continue
			}
			certifierID, ok := certifierIDs[strings.TrimSpace(certKey)]
			if !ok {
				out.Accreditations.SkippedUnresolved++
				continue
			}
			accRows = append(accRows, &types.Accreditation{
				StandardID:  standardID,
				CertifierID: certifierID,
				Valid:       true,
			})
		}
	}
	for start := 0; start < len(accRows); start += batchSize {
		end := start + batchSize
		if end > len(accRows) {
			end = len(accRows)
		}
		batch := accRows[start:end]
		if err := deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			n, err := deps.Accreditations.CreateIgnoreDuplicates(dbctx.Context{Ctx: ctx, Tx: tx}, batch)
			out.Accreditations.Inserted += int(n)
			return err
		}); err != nil {
			return out, fmt.Errorf("relationship_build: insert accreditations: %w", err)
		}
	}
	out.Accreditations.SkippedDuplicate = len(accRows) - out.Accreditations.Inserted

	// Offering pass: each center's embedded standard-code list, center
	// identity resolved once per center.
	offRows := make([]*types.Offering, 0)
	for _, rec := range in.Centers {
		centerID, centerOK := centerIDs[strings.TrimSpace(rec.Key)]
		for _, code := range rec.StandardCodes {
			out.Offerings.Attempted++
			if !centerOK {
				out.Offerings.SkippedUnresolved++
				continue
			}
			standardID, ok := standardIDs[strings.TrimSpace(code)]
			if !ok {
				out.Offerings.SkippedUnresolved++
				continue
			}
			offRows = append(offRows, &types.Offering{
				CenterID:   centerID,
				StandardID: standardID,
				Active:     true,
			})
		}
	}
	for start := 0; start < len(offRows); start += batchSize {
		end := start + batchSize
		if end > len(offRows) {
			end = len(offRows)
		}
		batch := offRows[start:end]
		if err := deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			n, err := deps.Offerings.CreateIgnoreDuplicates(dbctx.Context{Ctx: ctx, Tx: tx}, batch)
			out.Offerings.Inserted += int(n)
			return err
		}); err != nil {
			return out, fmt.Errorf("relationship_build: insert offerings: %w", err)
		}
	}
	out.Offerings.SkippedDuplicate = len(offRows) - out.Offerings.Inserted

	log.Info("Relationship graphs built",
		"accreditations_attempted", out.Accreditations.Attempted,
		"accreditations_inserted", out.Accreditations.Inserted,
		"accreditations_skipped_unresolved", out.Accreditations.SkippedUnresolved,
		"accreditations_skipped_duplicate", out.Accreditations.SkippedDuplicate,
		"offerings_attempted", out.Offerings.Attempted,
		"offerings_inserted", out.Offerings.Inserted,
		"offerings_skipped_unresolved", out.Offerings.SkippedUnresolved,
		"offerings_skipped_duplicate", out.Offerings.SkippedDuplicate,
	)
	return out, nil
}
