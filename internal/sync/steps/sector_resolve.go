package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/madfam-org/avala/internal/data/repos"
	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/pkg/logger"
	"github.com/madfam-org/avala/internal/sync/extract"
)

type SectorResolveDeps struct {
	DB      *gorm.DB
	Log     *logger.Logger
	Sectors repos.SectorRepo
}

type SectorResolveInput struct {
	Standards []extract.StandardRecord
	BatchSize int
}

type SectorResolveOutput struct {
	Processed int
	Skipped   int
	// SectorIDs maps the sector natural key to its canonical identity,
	// re-read from the store after the upserts.
	SectorIDs map[int]uuid.UUID
}

// SectorResolve derives the sector dimension from the standard extract:
// one row per distinct sector key, first name seen wins (source order).
// Records without a parsable key or with an empty name contribute nothing.
func SectorResolve(ctx context.Context, deps SectorResolveDeps, in SectorResolveInput) (SectorResolveOutput, error) {
	out := SectorResolveOutput{SectorIDs: map[int]uuid.UUID{}}
	if deps.DB == nil || deps.Log == nil || deps.Sectors == nil {
		return out, fmt.Errorf("sector_resolve: missing deps")
	}
	log := deps.Log.With("step", "sector_resolve")

	seen := map[int]bool{}
	rows := make([]*types.Sector, 0)
	for _, rec := range in.Standards {
		key, ok := parseSectorKey(rec.Sector)
		if !ok {
			continue
		}
		if seen[key] {
			continue
		}
		// An unnamed sector cannot be created; a later record carrying the
		// same key with a name may still create it.
		name := strings.TrimSpace(rec.SectorName)
		if name == "" {
			out.Skipped++
			continue
		}
		seen[key] = true
		rows = append(rows, &types.Sector{
			SectorKey: key,
			Name:      name,
			Kind:      types.SectorKindProductive,
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
			return deps.Sectors.UpsertBySectorKey(dbctx.Context{Ctx: ctx, Tx: tx}, batch)
		}); err != nil {
			return out, fmt.Errorf("sector_resolve: upsert batch: %w", err)
		}
		out.Processed += len(batch)
	}

	ids, err := deps.Sectors.MapBySectorKey(dbctx.Context{Ctx: ctx})
	if err != nil {
		return out, fmt.Errorf("sector_resolve: map sectors: %w", err)
	}
	out.SectorIDs = ids

	log.Info("Sectors resolved", "processed", out.Processed, "skipped", out.Skipped)
	return out, nil
}
