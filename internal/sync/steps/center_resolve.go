package steps

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/madfam-org/avala/internal/data/repos"
	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/pkg/logger"
	"github.com/madfam-org/avala/internal/sync/extract"
)

type CenterResolveDeps struct {
	DB      *gorm.DB
	Log     *logger.Logger
	Centers repos.CenterRepo
}

type CenterResolveInput struct {
	Centers   []extract.CenterRecord
	BatchSize int
}

type CenterResolveOutput struct {
	Processed int
	Skipped   int
}

// CenterResolve upserts the evaluation-center registry; same dedup metadata
// handling as CertifierResolve. The embedded standard-code lists are left for
// the relationship builder.
func CenterResolve(ctx context.Context, deps CenterResolveDeps, in CenterResolveInput) (CenterResolveOutput, error) {
	out := CenterResolveOutput{}
	if deps.DB == nil || deps.Log == nil || deps.Centers == nil {
		return out, fmt.Errorf("center_resolve: missing deps")
	}
	log := deps.Log.With("step", "center_resolve")

	rows := make([]*types.Center, 0, len(in.Centers))
	seen := map[string]bool{}
	for _, rec := range in.Centers {
		key := strings.TrimSpace(rec.Key)
		if key == "" {
			out.Skipped++
			log.Debug("Center record without id, skipping")
			continue
		}
		if seen[key] {
			out.Skipped++
			continue
		}
		seen[key] = true
		row := &types.Center{
			CenterKey: key,
			Name:      strings.TrimSpace(rec.Name),
		}
		if len(rec.AltNames) > 0 {
			row.AltNames = datatypes.JSON(mustJSON(rec.AltNames))
		}
		if nk := strings.TrimSpace(rec.NormalizedKey); nk != "" {
			row.NormalizedKey = &nk
		}
		rows = append(rows, row)
	}

	batchSize := batchSizeOrDefault(in.BatchSize)
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		if err := deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return deps.Centers.UpsertByCenterKey(dbctx.Context{Ctx: ctx, Tx: tx}, batch)
		}); err != nil {
			return out, fmt.Errorf("center_resolve: upsert batch: %w", err)
		}
		out.Processed += len(batch)
	}

	log.Info("Centers resolved", "processed", out.Processed, "skipped", out.Skipped)
	return out, nil
}
