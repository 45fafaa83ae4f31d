package validate

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/logger"
)

// countThreshold is the fraction of the expected baseline below which a
// non-zero count degrades from PASS to WARN.
const countThreshold = 0.9

// violationDisplayCap bounds how many malformed codes a report lists.
const violationDisplayCap = 20

var codePattern = regexp.MustCompile(`^[A-Z]{2}\d{4}(\.\d{2})?$`)

// ValidCode reports whether a standard code conforms to the published
// natural-key format (XX#### optionally followed by .##).
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// CountStatus grades an actual record count against its expected baseline.
func CountStatus(actual, expected int64) Status {
	if actual == 0 {
		return StatusFail
	}
	if expected <= 0 || float64(actual) >= countThreshold*float64(expected) {
		return StatusPass
	}
	return StatusWarn
}

// Validator re-reads the finished store and grades it. It never mutates
// anything; a FAIL leaves the store exactly as found.
type Validator struct {
	db        *gorm.DB
	log       *logger.Logger
	baselines Baselines
}

func New(db *gorm.DB, baseLog *logger.Logger, baselines Baselines) *Validator {
	return &Validator{
		db:        db,
		log:       baseLog.With("component", "Validator"),
		baselines: baselines,
	}
}

func (v *Validator) Run(ctx context.Context) (*Report, error) {
	report := &Report{GeneratedAt: time.Now().UTC()}

	if err := v.countChecks(ctx, report); err != nil {
		return nil, err
	}
	if err := v.formatCheck(ctx, report); err != nil {
		return nil, err
	}
	if err := v.coverageChecks(ctx, report); err != nil {
		return nil, err
	}
	if err := v.integrityChecks(ctx, report); err != nil {
		return nil, err
	}

	pass, warn, fail := report.Tally()
	v.log.Info("Validation finished", "pass", pass, "warn", warn, "fail", fail)
	return report, nil
}

func (v *Validator) countChecks(ctx context.Context, report *Report) error {
	exp := v.baselines.Expected
	checks := []struct {
		name     string
		model    any
		expected int64
	}{
		{"count/sector", &types.Sector{}, exp.Sectors},
		{"count/committee", &types.Committee{}, exp.Committees},
		{"count/standard", &types.Standard{}, exp.Standards},
		{"count/certifier", &types.Certifier{}, exp.Certifiers},
		{"count/center", &types.Center{}, exp.Centers},
		{"count/occupation", &types.Occupation{}, exp.Occupations},
		{"count/accreditation", &types.Accreditation{}, exp.Accreditations},
		{"count/offering", &types.Offering{}, exp.Offerings},
	}
	for _, c := range checks {
		var n int64
		if err := v.db.WithContext(ctx).Model(c.model).Count(&n).Error; err != nil {
			return fmt.Errorf("validate %s: %w", c.name, err)
		}
		report.Add(Check{
			Name:   c.name,
			Status: CountStatus(n, c.expected),
			Detail: fmt.Sprintf("actual=%d expected=%d", n, c.expected),
		})
	}
	return nil
}

func (v *Validator) formatCheck(ctx context.Context, report *Report) error {
	var codes []string
	if err := v.db.WithContext(ctx).
		Model(&types.Standard{}).
		Order("code").
		Pluck("code", &codes).Error; err != nil {
		return fmt.Errorf("validate format: %w", err)
	}

	violations := make([]string, 0)
	for _, code := range codes {
		if !ValidCode(code) {
			violations = append(violations, code)
		}
	}

	check := Check{
		Name:   "format/standard_code",
		Status: StatusPass,
		Detail: fmt.Sprintf("checked=%d violations=%d", len(codes), len(violations)),
	}
	if len(violations) > 0 {
		// Non-conforming keys are reported, not rejected.
		check.Status = StatusWarn
		if len(violations) > violationDisplayCap {
			lines := make([]string, 0, violationDisplayCap+1)
			lines = append(lines, violations[:violationDisplayCap]...)
			lines = append(lines, fmt.Sprintf("... and %d more", len(violations)-violationDisplayCap))
			check.Lines = lines
		} else {
			check.Lines = violations
		}
	}
	report.Add(check)
	return nil
}

func (v *Validator) coverageChecks(ctx context.Context, report *Report) error {
	fields := []struct {
		name  string
		table string
		col   string
	}{
		{"coverage/standard.committee_id", "standard", "committee_id"},
		{"coverage/standard.sector_id", "standard", "sector_id"},
		{"coverage/committee.sector_id", "committee", "sector_id"},
		{"coverage/committee.registered_at", "committee", "registered_at"},
		{"coverage/certifier.alt_names", "certifier", "alt_names"},
		{"coverage/certifier.normalized_key", "certifier", "normalized_key"},
		{"coverage/center.alt_names", "center", "alt_names"},
		{"coverage/center.normalized_key", "center", "normalized_key"},
	}
	for _, f := range fields {
		var total, populated int64
		if err := v.db.WithContext(ctx).Table(f.table).Count(&total).Error; err != nil {
			return fmt.Errorf("validate %s: %w", f.name, err)
		}
		if err := v.db.WithContext(ctx).Table(f.table).
			Where(f.col + " IS NOT NULL").
			Count(&populated).Error; err != nil {
			return fmt.Errorf("validate %s: %w", f.name, err)
		}
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(populated) / float64(total)
		}
		report.Add(Check{
			Name:   f.name,
			Status: StatusInfo,
			Detail: fmt.Sprintf("populated=%d/%d (%.1f%%)", populated, total, pct),
		})
	}
	return nil
}

func (v *Validator) integrityChecks(ctx context.Context, report *Report) error {
	queries := []struct {
		name string
		sql  string
	}{
		{
			"integrity/accreditation.standard_id",
			`SELECT count(*) FROM accreditation a LEFT JOIN standard s ON s.id = a.standard_id WHERE s.id IS NULL`,
		},
		{
			"integrity/accreditation.certifier_id",
			`SELECT count(*) FROM accreditation a LEFT JOIN certifier c ON c.id = a.certifier_id WHERE c.id IS NULL`,
		},
		{
			"integrity/offering.center_id",
			`SELECT count(*) FROM offering o LEFT JOIN center c ON c.id = o.center_id WHERE c.id IS NULL`,
		},
		{
			"integrity/offering.standard_id",
			`SELECT count(*) FROM offering o LEFT JOIN standard s ON s.id = o.standard_id WHERE s.id IS NULL`,
		},
		{
			"integrity/occupation.standard_id",
			`SELECT count(*) FROM occupation oc LEFT JOIN standard s ON s.id = oc.standard_id WHERE s.id IS NULL`,
		},
		{
			"integrity/standard.committee_id",
			`SELECT count(*) FROM standard s LEFT JOIN committee c ON c.id = s.committee_id WHERE s.committee_id IS NOT NULL AND c.id IS NULL`,
		},
		{
			"integrity/standard.sector_id",
			`SELECT count(*) FROM standard s LEFT JOIN sector se ON se.id = s.sector_id WHERE s.sector_id IS NOT NULL AND se.id IS NULL`,
		},
		{
			"integrity/committee.sector_id",
			`SELECT count(*) FROM committee c LEFT JOIN sector se ON se.id = c.sector_id WHERE c.sector_id IS NOT NULL AND se.id IS NULL`,
		},
	}
	for _, q := range queries {
		var orphans int64
		if err := v.db.WithContext(ctx).Raw(q.sql).Scan(&orphans).Error; err != nil {
			return fmt.Errorf("validate %s: %w", q.name, err)
		}
		status := StatusPass
		if orphans > 0 {
			status = StatusFail
		}
		report.Add(Check{
			Name:   q.name,
			Status: status,
			Detail: fmt.Sprintf("orphans=%d", orphans),
		})
	}
	return nil
}
