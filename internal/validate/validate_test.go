package validate

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/madfam-org/avala/internal/data/repos"
	"github.com/madfam-org/avala/internal/data/repos/testutil"
	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
)

// seedGraph writes one small, fully linked graph: a sector, a committee in
// it, a standard linked to both, two certifiers, a center, an occupation,
// an accreditation against the first certifier, and an offering.
func seedGraph(t *testing.T, tx *gorm.DB) {
	t.Helper()
	log := testutil.Logger(t)
	dbc := dbctx.Context{Ctx: context.Background()}

	sectors := repos.NewSectorRepo(tx, log)
	if err := sectors.UpsertBySectorKey(dbc, []*types.Sector{{SectorKey: 770001, Name: "Servicios"}}); err != nil {
		t.Fatalf("seed sector: %v", err)
	}
	sectorIDs, err := sectors.MapBySectorKey(dbc)
	if err != nil {
		t.Fatalf("map sectors: %v", err)
	}
	sectorID := sectorIDs[770001]

	committees := repos.NewCommitteeRepo(tx, log)
	if err := committees.UpsertByCommitteeKey(dbc, []*types.Committee{
		{CommitteeKey: "CG-VAL-1", Name: "Comité", SectorID: testutil.PtrUUID(sectorID)},
	}); err != nil {
		t.Fatalf("seed committee: %v", err)
	}
	committeeIDs, err := committees.MapByCommitteeKey(dbc)
	if err != nil {
		t.Fatalf("map committees: %v", err)
	}
	committeeID := committeeIDs["CG-VAL-1"]

	standards := repos.NewStandardRepo(tx, log)
	if err := standards.UpsertByCode(dbc, []*types.Standard{
		{Code: "ZV9901", Title: "Validación", CommitteeID: testutil.PtrUUID(committeeID), SectorID: testutil.PtrUUID(sectorID), SyncedAt: time.Now().UTC()},
	}); err != nil {
		t.Fatalf("seed standard: %v", err)
	}
	std, err := standards.GetByCode(dbc, "ZV9901")
	if err != nil || std == nil {
		t.Fatalf("reload standard: %v", err)
	}

	certifiers := repos.NewCertifierRepo(tx, log)
	if err := certifiers.UpsertByCertifierKey(dbc, []*types.Certifier{
		{CertifierKey: "OC-VAL-1", Name: "Primera", Kind: types.CertifierKindPrivate},
		{CertifierKey: "OC-VAL-2", Name: "Segunda", Kind: types.CertifierKindPublic},
	}); err != nil {
		t.Fatalf("seed certifiers: %v", err)
	}
	certifierIDs, err := certifiers.MapByCertifierKey(dbc)
	if err != nil {
		t.Fatalf("map certifiers: %v", err)
	}

	centers := repos.NewCenterRepo(tx, log)
	if err := centers.UpsertByCenterKey(dbc, []*types.Center{
		{CenterKey: "CE-VAL-1", Name: "Centro"},
	}); err != nil {
		t.Fatalf("seed center: %v", err)
	}
	centerIDs, err := centers.MapByCenterKey(dbc)
	if err != nil {
		t.Fatalf("map centers: %v", err)
	}

	occupations := repos.NewOccupationRepo(tx, log)
	if _, err := occupations.CreateIgnoreDuplicates(dbc, []*types.Occupation{
		{StandardID: std.ID, Label: "Consultor"},
	}); err != nil {
		t.Fatalf("seed occupation: %v", err)
	}

	accreditations := repos.NewAccreditationRepo(tx, log)
	if _, err := accreditations.CreateIgnoreDuplicates(dbc, []*types.Accreditation{
		{StandardID: std.ID, CertifierID: certifierIDs["OC-VAL-1"], Valid: true},
	}); err != nil {
		t.Fatalf("seed accreditation: %v", err)
	}

	offerings := repos.NewOfferingRepo(tx, log)
	if _, err := offerings.CreateIgnoreDuplicates(dbc, []*types.Offering{
		{CenterID: centerIDs["CE-VAL-1"], StandardID: std.ID, Active: true},
	}); err != nil {
		t.Fatalf("seed offering: %v", err)
	}
}

func smallBaselines() Baselines {
	var b Baselines
	b.Expected.Sectors = 1
	b.Expected.Committees = 1
	b.Expected.Standards = 1
	b.Expected.Certifiers = 1
	b.Expected.Centers = 1
	b.Expected.Occupations = 1
	b.Expected.Accreditations = 1
	b.Expected.Offerings = 1
	return b
}

func failNames(r *Report) []string {
	var out []string
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			out = append(out, c.Name)
		}
	}
	return out
}

func TestValidatorHealthyStore(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	seedGraph(t, tx)

	v := New(tx, testutil.Logger(t), smallBaselines())
	report, err := v.Run(context.Background())
	if err != nil {
		t.Fatalf("run validator: %v", err)
	}

	if fails := failNames(report); len(fails) != 0 {
		t.Fatalf("healthy store must not fail, got %v\n%s", fails, report.String())
	}
	if report.Failed() {
		t.Fatal("Failed() must be false for a healthy store")
	}

	out := report.String()
	if !strings.Contains(out, "count/standard") || !strings.Contains(out, "integrity/offering.center_id") {
		t.Fatalf("report missing expected checks:\n%s", out)
	}
}

func TestValidatorDetectsOrphanedAccreditation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	seedGraph(t, tx)

	// Remove the referenced certifier out of band. The second certifier keeps
	// the count check green, so the orphan is the only failure.
	if err := tx.Exec(`DELETE FROM certifier WHERE certifier_key = ?`, "OC-VAL-1").Error; err != nil {
		t.Fatalf("delete certifier: %v", err)
	}

	v := New(tx, testutil.Logger(t), smallBaselines())
	report, err := v.Run(context.Background())
	if err != nil {
		t.Fatalf("run validator: %v", err)
	}

	fails := failNames(report)
	if len(fails) != 1 || fails[0] != "integrity/accreditation.certifier_id" {
		t.Fatalf("expected exactly the certifier orphan to fail, got %v\n%s", fails, report.String())
	}
	if !report.Failed() {
		t.Fatal("orphaned reference must fail the report")
	}
}

func TestValidatorWarnsOnMalformedCode(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	seedGraph(t, tx)

	standards := repos.NewStandardRepo(tx, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	if err := standards.UpsertByCode(dbc, []*types.Standard{
		{Code: "malformed-999", Title: "Clave rota"},
	}); err != nil {
		t.Fatalf("seed malformed standard: %v", err)
	}

	v := New(tx, testutil.Logger(t), smallBaselines())
	report, err := v.Run(context.Background())
	if err != nil {
		t.Fatalf("run validator: %v", err)
	}

	var format *Check
	for i := range report.Checks {
		if report.Checks[i].Name == "format/standard_code" {
			format = &report.Checks[i]
			break
		}
	}
	if format == nil {
		t.Fatal("format check missing from report")
	}
	if format.Status != StatusWarn {
		t.Fatalf("expected WARN for malformed code, got %s", format.Status)
	}
	found := false
	for _, line := range format.Lines {
		if line == "malformed-999" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the malformed code to be listed, got %v", format.Lines)
	}
	if report.Failed() {
		t.Fatal("a malformed code alone must not fail the report")
	}
}

func TestValidatorCapsMalformedCodeList(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	seedGraph(t, tx)

	standards := repos.NewStandardRepo(tx, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	rows := make([]*types.Standard, 0, violationDisplayCap+2)
	for i := 0; i < violationDisplayCap+2; i++ {
		rows = append(rows, &types.Standard{
			Code:  fmt.Sprintf("bad-code-%02d", i),
			Title: "Clave rota",
		})
	}
	if err := standards.UpsertByCode(dbc, rows); err != nil {
		t.Fatalf("seed malformed standards: %v", err)
	}

	v := New(tx, testutil.Logger(t), smallBaselines())
	report, err := v.Run(context.Background())
	if err != nil {
		t.Fatalf("run validator: %v", err)
	}

	var format *Check
	for i := range report.Checks {
		if report.Checks[i].Name == "format/standard_code" {
			format = &report.Checks[i]
			break
		}
	}
	if format == nil {
		t.Fatal("format check missing from report")
	}
	if format.Status != StatusWarn {
		t.Fatalf("expected WARN, got %s", format.Status)
	}
	if len(format.Lines) != violationDisplayCap+1 {
		t.Fatalf("expected %d listed lines, got %d", violationDisplayCap+1, len(format.Lines))
	}
	if got := format.Lines[violationDisplayCap]; got != "... and 2 more" {
		t.Fatalf("expected overflow line, got %q", got)
	}
	for _, line := range format.Lines[:violationDisplayCap] {
		if ValidCode(line) {
			t.Fatalf("listed line should be a violation, got %q", line)
		}
	}
}
