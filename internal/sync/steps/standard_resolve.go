package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/madfam-org/avala/internal/data/repos"
	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/pkg/logger"
	"github.com/madfam-org/avala/internal/sync/extract"
	"github.com/madfam-org/avala/internal/sync/index"
)

type StandardResolveDeps struct {
	DB          *gorm.DB
	Log         *logger.Logger
	Standards   repos.StandardRepo
	Occupations repos.OccupationRepo
}

type StandardResolveInput struct {
	Standards    []extract.StandardRecord
	Index        *index.Index
	SectorIDs    map[int]uuid.UUID
	CommitteeIDs map[string]uuid.UUID
	BatchSize    int
}

type StandardResolveOutput struct {
	Processed            int
	Skipped              int
	OccupationsAttempted int
	OccupationsInserted  int
	StandardIDs          map[string]uuid.UUID
}

// StandardResolve reconciles three sources per record: the base standard
// extract, the committee listings (through the reverse index), and the
// auxiliary detail extract keyed by code.
//
// The committee link comes from the reverse index while the sector link comes
// from the record's own declared sector. The two resolutions are independent
// and may disagree; both are kept as-is because the upstream registries are
// not guaranteed mutually consistent.
func StandardResolve(ctx context.Context, deps StandardResolveDeps, in StandardResolveInput) (StandardResolveOutput, error) {
	out := StandardResolveOutput{StandardIDs: map[string]uuid.UUID{}}
	if deps.DB == nil || deps.Log == nil || deps.Standards == nil || deps.Occupations == nil {
		return out, fmt.Errorf("standard_resolve: missing deps")
	}
	if in.Index == nil {
		return out, fmt.Errorf("standard_resolve: missing index")
	}
	log := deps.Log.With("step", "standard_resolve")
	now := time.Now().UTC()

	rows := make([]*types.Standard, 0, len(in.Standards))
	seenCodes := map[string]bool{}
	for i := range in.Standards {
		rec := in.Standards[i]
		code := strings.TrimSpace(rec.Code)
		if code == "" {
			out.Skipped++
			log.Debug("Standard record without code, skipping")
			continue
		}
		if seenCodes[code] {
			out.Skipped++
			continue
		}
		seenCodes[code] = true

		var committeeID *uuid.UUID
		com := in.Index.StandardCommittee[code]
		if com != nil {
			if id, ok := in.CommitteeIDs[strings.TrimSpace(com.Key)]; ok {
				committeeID = &id
			}
		}

		var sectorID *uuid.UUID
		if sk, ok := parseSectorKey(rec.Sector); ok {
			if id, ok := in.SectorIDs[sk]; ok {
				sectorID = &id
			}
		}

		meta := map[string]any{
			"committee_key": rec.Committee,
			"sector_key":    rec.Sector,
		}
		if com != nil {
			meta["committee"] = map[string]any{
				"key":       com.Key,
				"name":      com.Name,
				"president": com.President,
				"email":     com.Email,
				"phone":     com.Phone,
				"sector":    com.Sector,
				"state":     com.State,
			}
		}
		if det, ok := in.Index.DetailByCode[code]; ok {
			meta["occupations"] = det.Occupations
			meta["courses"] = det.Courses
			meta["members"] = det.Members
		}

		rows = append(rows, &types.Standard{
			Code:        code,
			Title:       strings.TrimSpace(rec.Title),
			Level:       rec.Level,
			Active:      rec.Active,
			CommitteeID: committeeID,
			SectorID:    sectorID,
			Metadata:    datatypes.JSON(mustJSON(meta)),
			Source:      strings.TrimSpace(rec.Source),
			Fingerprint: fingerprint(rec),
			SyncedAt:    now,
		})
	}

	batchSize := batchSizeOrDefault(in.BatchSize)
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		if err := deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return deps.Standards.UpsertByCode(dbctx.Context{Ctx: ctx, Tx: tx}, batch)
		}); err != nil {
			return out, fmt.Errorf("standard_resolve: upsert batch: %w", err)
		}
		out.Processed += len(batch)
	}

	ids, err := deps.Standards.MapByCode(dbctx.Context{Ctx: ctx})
	if err != nil {
		return out, fmt.Errorf("standard_resolve: map standards: %w", err)
	}
	out.StandardIDs = ids

	// Flatten occupation labels into (standard, label) pairs. Duplicate pairs
	// are skipped on insert; stale pairs are never pruned.
	pairs := make([]*types.Occupation, 0)
	seen := map[string]bool{}
	for _, row := range rows {
		det, ok := in.Index.DetailByCode[row.Code]
		if !ok {
			continue
		}
		standardID, ok := ids[row.Code]
		if !ok {
			continue
		}
		for _, label := range det.Occupations {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			k := row.Code + "\x00" + label
			if seen[k] {
				continue
			}
			seen[k] = true
			pairs = append(pairs, &types.Occupation{
				StandardID: standardID,
				Label:      label,
			})
		}
	}
	out.OccupationsAttempted = len(pairs)

	for start := 0; start < len(pairs); start += batchSize {
		end := start + batchSize
		if end > len(pairs) {
			end = len(pairs)
		}
		batch := pairs[start:end]
		if err := deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			n, err := deps.Occupations.CreateIgnoreDuplicates(dbctx.Context{Ctx: ctx, Tx: tx}, batch)
			out.OccupationsInserted += int(n)
			return err
		}); err != nil {
			return out, fmt.Errorf("standard_resolve: insert occupations: %w", err)
		}
	}

	log.Info("Standards resolved",
		"processed", out.Processed,
		"skipped", out.Skipped,
		"occupations_attempted", out.OccupationsAttempted,
		"occupations_inserted", out.OccupationsInserted,
	)
	return out, nil
}
