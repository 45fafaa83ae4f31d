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

type CertifierResolveDeps struct {
	DB         *gorm.DB
	Log        *logger.Logger
	Certifiers repos.CertifierRepo
}

type CertifierResolveInput struct {
	Certifiers []extract.CertifierRecord
	BatchSize  int
}

type CertifierResolveOutput struct {
	Processed int
	Skipped   int
}

// CertifierResolve upserts the certifier registry. Alternate names and the
// normalized key are stored verbatim; the extractor produces them and a
// downstream dedup pass consumes them.
func CertifierResolve(ctx context.Context, deps CertifierResolveDeps, in CertifierResolveInput) (CertifierResolveOutput, error) {
	out := CertifierResolveOutput{}
	if deps.DB == nil || deps.Log == nil || deps.Certifiers == nil {
		return out, fmt.Errorf("certifier_resolve: missing deps")
	}
	log := deps.Log.With("step", "certifier_resolve")

	rows := make([]*types.Certifier, 0, len(in.Certifiers))
	seen := map[string]bool{}
	for _, rec := range in.Certifiers {
		key := strings.TrimSpace(rec.Key)
		if key == "" {
			out.Skipped++
			log.Debug("Certifier record without id, skipping")
			continue
		}
		if seen[key] {
			out.Skipped++
			continue
		}
		seen[key] = true
		row := &types.Certifier{
			CertifierKey: key,
			Name:         strings.TrimSpace(rec.Name),
			Kind:         ClassifyCertifierKind(rec.Type),
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
			return deps.Certifiers.UpsertByCertifierKey(dbctx.Context{Ctx: ctx, Tx: tx}, batch)
		}); err != nil {
			return out, fmt.Errorf("certifier_resolve: upsert batch: %w", err)
		}
		out.Processed += len(batch)
	}

	log.Info("Certifiers resolved", "processed", out.Processed, "skipped", out.Skipped)
	return out, nil
}
