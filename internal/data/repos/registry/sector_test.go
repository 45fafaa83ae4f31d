package registry

import (
	"context"
	"testing"

	"github.com/madfam-org/avala/internal/data/repos/testutil"
	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
)

func TestSectorUpsertBySectorKey(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := NewSectorRepo(tx, log)
	dbc := dbctx.Context{Ctx: context.Background()}

	rows := []*types.Sector{
		{SectorKey: 990001, Name: "Servicios profesionales"},
		{SectorKey: 990002, Name: "Agroindustria"},
	}
	if err := repo.UpsertBySectorKey(dbc, rows); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	before, err := repo.Count(dbc)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	// Same keys again with a renamed sector: row count must not grow and the
	// name must follow the newest extract.
	again := []*types.Sector{
		{SectorKey: 990001, Name: "Servicios"},
		{SectorKey: 990002, Name: "Agroindustria"},
	}
	if err := repo.UpsertBySectorKey(dbc, again); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	after, err := repo.Count(dbc)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != before {
		t.Fatalf("upsert changed row count: before=%d after=%d", before, after)
	}

	var got types.Sector
	if err := tx.Where("sector_key = ?", 990001).First(&got).Error; err != nil {
		t.Fatalf("reload sector: %v", err)
	}
	if got.Name != "Servicios" {
		t.Fatalf("expected renamed sector, got %q", got.Name)
	}
	if got.Kind != types.SectorKindProductive {
		t.Fatalf("expected default kind, got %q", got.Kind)
	}

	ids, err := repo.MapBySectorKey(dbc)
	if err != nil {
		t.Fatalf("map by key: %v", err)
	}
	if ids[990001] != got.ID {
		t.Fatalf("identity map mismatch: %s vs %s", ids[990001], got.ID)
	}
}

func TestSectorUpsertEmptySlice(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSectorRepo(tx, testutil.Logger(t))

	if err := repo.UpsertBySectorKey(dbctx.Context{Ctx: context.Background()}, nil); err != nil {
		t.Fatalf("nil slice should be a no-op, got %v", err)
	}
}
