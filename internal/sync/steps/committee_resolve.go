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

type CommitteeResolveDeps struct {
	DB         *gorm.DB
	Log        *logger.Logger
	Committees repos.CommitteeRepo
}

type CommitteeResolveInput struct {
	Committees []extract.CommitteeRecord
	SectorIDs  map[int]uuid.UUID
	BatchSize  int
}

type CommitteeResolveOutput struct {
	Processed    int
	Skipped      int
	CommitteeIDs map[string]uuid.UUID
}

// CommitteeResolve upserts oversight committees by natural key. A committee
// whose sector key is absent from the sector map keeps a null sector link;
// that is normal, not an error.
func CommitteeResolve(ctx context.Context, deps CommitteeResolveDeps, in CommitteeResolveInput) (CommitteeResolveOutput, error) {
	out := CommitteeResolveOutput{CommitteeIDs: map[string]uuid.UUID{}}
	if deps.DB == nil || deps.Log == nil || deps.Committees == nil {
		return out, fmt.Errorf("committee_resolve: missing deps")
	}
	log := deps.Log.With("step", "committee_resolve")

	rows := make([]*types.Committee, 0, len(in.Committees))
	seen := map[string]bool{}
	for _, rec := range in.Committees {
		key := strings.TrimSpace(rec.Key)
		if key == "" {
			out.Skipped++
			log.Debug("Committee record without key, skipping")
			continue
		}
		// First record wins on duplicate keys; an upsert batch cannot touch
		// the same row twice.
		if seen[key] {
			out.Skipped++
			continue
		}
		seen[key] = true

		var sectorID *uuid.UUID
		if sk, ok := parseSectorKey(rec.Sector); ok {
			if id, ok := in.SectorIDs[sk]; ok {
				sectorID = &id
			}
		}

		rows = append(rows, &types.Committee{
			CommitteeKey: key,
			Name:         strings.TrimSpace(rec.Name),
			President:    strings.TrimSpace(rec.President),
			Secretary:    strings.TrimSpace(rec.Secretary),
			Email:        strings.TrimSpace(strings.ToLower(rec.Email)),
			Phone:        strings.TrimSpace(rec.Phone),
			Street:       strings.TrimSpace(rec.Street),
			City:         strings.TrimSpace(rec.City),
			State:        strings.TrimSpace(rec.State),
			PostalCode:   strings.TrimSpace(rec.PostalCode),
			SectorID:     sectorID,
			RegisteredAt: timeFromEpochMillis(rec.RegisteredAt),
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
			return deps.Committees.UpsertByCommitteeKey(dbctx.Context{Ctx: ctx, Tx: tx}, batch)
		}); err != nil {
			return out, fmt.Errorf("committee_resolve: upsert batch: %w", err)
		}
		out.Processed += len(batch)
	}

	ids, err := deps.Committees.MapByCommitteeKey(dbctx.Context{Ctx: ctx})
	if err != nil {
		return out, fmt.Errorf("committee_resolve: map committees: %w", err)
	}
	out.CommitteeIDs = ids

	log.Info("Committees resolved", "processed", out.Processed, "skipped", out.Skipped)
	return out, nil
}
