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

type SectorRepo interface {
	UpsertBySectorKey(dbc dbctx.Context, rows []*types.Sector) error
	MapBySectorKey(dbc dbctx.Context) (map[int]uuid.UUID, error)
	Count(dbc dbctx.Context) (int64, error)
}

type sectorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectorRepo(db *gorm.DB, baseLog *logger.Logger) SectorRepo {
	return &sectorRepo{db: db, log: baseLog.With("repo", "SectorRepo")}
}

func (r *sectorRepo) UpsertBySectorKey(dbc dbctx.Context, rows []*types.Sector) error {
	t := dbc.DB(r.db)
	if len(rows) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.Kind == "" {
			row.Kind = types.SectorKindProductive
		}
		row.UpdatedAt = now
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sector_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"kind",
				"updated_at",
			}),
		}).
		Create(&rows).Error
}

func (r *sectorRepo) MapBySectorKey(dbc dbctx.Context) (map[int]uuid.UUID, error) {
	t := dbc.DB(r.db)
	var rows []struct {
		ID        uuid.UUID
		SectorKey int
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Sector{}).
		Select("id", "sector_key").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int]uuid.UUID, len(rows))
	for _, row := range rows {
		out[row.SectorKey] = row.ID
	}
	return out, nil
}

func (r *sectorRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.DB(r.db)
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Sector{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
