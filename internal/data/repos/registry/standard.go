package registry

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/pkg/logger"
)

type StandardRepo interface {
	UpsertByCode(dbc dbctx.Context, rows []*types.Standard) error
	GetByCode(dbc dbctx.Context, code string) (*types.Standard, error)
	MapByCode(dbc dbctx.Context) (map[string]uuid.UUID, error)
	ListCodes(dbc dbctx.Context) ([]string, error)
	Count(dbc dbctx.Context) (int64, error)
}

type standardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStandardRepo(db *gorm.DB, baseLog *logger.Logger) StandardRepo {
	return &standardRepo{db: db, log: baseLog.With("repo", "StandardRepo")}
}

func (r *standardRepo) UpsertByCode(dbc dbctx.Context, rows []*types.Standard) error {
	t := dbc.DB(r.db)
	if len(rows) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		row.UpdatedAt = now
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title",
				"level",
				"active",
				"committee_id",
				"sector_id",
				"metadata",
				"source",
				"fingerprint",
				"synced_at",
				"updated_at",
			}),
		}).
		Create(&rows).Error
}

func (r *standardRepo) GetByCode(dbc dbctx.Context, code string) (*types.Standard, error) {
	t := dbc.DB(r.db)
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var row types.Standard
	if err := t.WithContext(dbc.Ctx).
		Where("code = ?", code).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *standardRepo) MapByCode(dbc dbctx.Context) (map[string]uuid.UUID, error) {
	t := dbc.DB(r.db)
	var rows []struct {
		ID   uuid.UUID
		Code string
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Standard{}).
		Select("id", "code").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		out[row.Code] = row.ID
	}
	return out, nil
}

func (r *standardRepo) ListCodes(dbc dbctx.Context) ([]string, error) {
	t := dbc.DB(r.db)
	var codes []string
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Standard{}).
		Order("code").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *standardRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.DB(r.db)
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Standard{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
