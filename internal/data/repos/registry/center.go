package registry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/pkg/logger"
)

type CenterRepo interface {
	UpsertByCenterKey(dbc dbctx.Context, rows []*types.Center) error
	MapByCenterKey(dbc dbctx.Context) (map[string]uuid.UUID, error)
	Count(dbc dbctx.Context) (int64, error)
}

type centerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCenterRepo(db *gorm.DB, baseLog *logger.Logger) CenterRepo {
	return &centerRepo{db: db, log: baseLog.With("repo", "CenterRepo")}
}

func (r *centerRepo) UpsertByCenterKey(dbc dbctx.Context, rows []*types.Center) error {
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
			Columns: []clause.Column{{Name: "center_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"alt_names",
				"normalized_key",
				"updated_at",
			}),
		}).
		Create(&rows).Error
}

func (r *centerRepo) MapByCenterKey(dbc dbctx.Context) (map[string]uuid.UUID, error) {
	t := dbc.DB(r.db)
	var rows []struct {
		ID        uuid.UUID
		CenterKey string
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Center{}).
		Select("id", "center_key").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		out[row.CenterKey] = row.ID
	}
	return out, nil
}

func (r *centerRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.DB(r.db)
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Center{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
