package jobs

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/madfam-org/avala/internal/data/repos/testutil"
	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
)

func TestSyncJobCreateAndLatest(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSyncJobRepo(tx, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	older := time.Now().UTC().Add(-time.Hour)
	newer := time.Now().UTC()

	first, err := repo.Create(dbc, &types.SyncJob{
		JobKind:        types.SyncJobKindRegistry,
		Status:         types.SyncJobStatusCompleted,
		StartedAt:      older,
		ItemsProcessed: 10,
		Errors:         datatypes.JSON([]byte(`[]`)),
		Result:         datatypes.JSON([]byte(`{}`)),
	})
	if err != nil {
		t.Fatalf("create first job: %v", err)
	}
	if first.ID.String() == "" {
		t.Fatal("expected generated id")
	}

	second, err := repo.Create(dbc, &types.SyncJob{
		JobKind:        types.SyncJobKindRegistry,
		Status:         types.SyncJobStatusCompleted,
		StartedAt:      newer,
		ItemsProcessed: 25,
		Errors:         datatypes.JSON([]byte(`[]`)),
		Result:         datatypes.JSON([]byte(`{}`)),
	})
	if err != nil {
		t.Fatalf("create second job: %v", err)
	}

	latest, err := repo.GetLatestByKind(dbc, types.SyncJobKindRegistry)
	if err != nil {
		t.Fatalf("latest by kind: %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Fatalf("expected newest job, got %+v", latest)
	}
	if latest.ItemsProcessed != 25 {
		t.Fatalf("expected newest counters, got %d", latest.ItemsProcessed)
	}
}

func TestSyncJobGetLatestUnknownKind(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSyncJobRepo(tx, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	got, err := repo.GetLatestByKind(dbc, "no_such_kind")
	if err != nil {
		t.Fatalf("latest by kind: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown kind, got %+v", got)
	}

	got, err = repo.GetLatestByKind(dbc, "  ")
	if err != nil || got != nil {
		t.Fatalf("blank kind should yield (nil, nil), got (%+v, %v)", got, err)
	}
}
