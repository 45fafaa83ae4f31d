package registry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/madfam-org/avala/internal/data/repos/testutil"
	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
)

func seedPair(t *testing.T, tx *gorm.DB, dbc dbctx.Context) (uuid.UUID, uuid.UUID) {
	t.Helper()
	log := testutil.Logger(t)

	standards := NewStandardRepo(tx, log)
	if err := standards.UpsertByCode(dbc, []*types.Standard{{Code: "ZZ9950", Title: "T"}}); err != nil {
		t.Fatalf("seed standard: %v", err)
	}
	std, err := standards.GetByCode(dbc, "ZZ9950")
	if err != nil || std == nil {
		t.Fatalf("reload standard: %v", err)
	}

	certifiers := NewCertifierRepo(tx, log)
	if err := certifiers.UpsertByCertifierKey(dbc, []*types.Certifier{
		{CertifierKey: "OC-TEST-1", Name: "Certificadora", Kind: types.CertifierKindPrivate},
	}); err != nil {
		t.Fatalf("seed certifier: %v", err)
	}
	ids, err := certifiers.MapByCertifierKey(dbc)
	if err != nil {
		t.Fatalf("map certifiers: %v", err)
	}
	return std.ID, ids["OC-TEST-1"]
}

func TestAccreditationCreateIgnoreDuplicates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background()}
	standardID, certifierID := seedPair(t, tx, dbc)

	repo := NewAccreditationRepo(tx, testutil.Logger(t))

	n, err := repo.CreateIgnoreDuplicates(dbc, []*types.Accreditation{
		{StandardID: standardID, CertifierID: certifierID, Valid: true},
	})
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 inserted, got %d", n)
	}

	// Same pair again must be silently dropped by the unique index.
	n, err = repo.CreateIgnoreDuplicates(dbc, []*types.Accreditation{
		{StandardID: standardID, CertifierID: certifierID, Valid: true},
	})
	if err != nil {
		t.Fatalf("duplicate insert: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 inserted for duplicate, got %d", n)
	}

	got, err := repo.GetByStandardIDs(dbc, []uuid.UUID{standardID})
	if err != nil {
		t.Fatalf("get by standard ids: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly one accreditation, got %d", len(got))
	}
	if got[0].CertifierID != certifierID || !got[0].Valid {
		t.Fatalf("unexpected accreditation: %+v", got[0])
	}
}

func TestAccreditationEmptyInput(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewAccreditationRepo(tx, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	n, err := repo.CreateIgnoreDuplicates(dbc, nil)
	if err != nil || n != 0 {
		t.Fatalf("nil slice should be a no-op, got (%d, %v)", n, err)
	}

	rows, err := repo.GetByStandardIDs(dbc, nil)
	if err != nil || len(rows) != 0 {
		t.Fatalf("empty id list should yield empty result, got (%v, %v)", rows, err)
	}
}
