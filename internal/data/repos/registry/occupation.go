package registry

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/pkg/logger"
)

type OccupationRepo interface {
	// CreateIgnoreDuplicates batch-inserts pairs, skipping ones already
	// present. Returns the number of rows actually inserted.
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Occupation) (int64, error)
	GetByStandardIDs(dbc dbctx.Context, standardIDs []uuid.UUID) ([]*types.Occupation, error)
	Count(dbc dbctx.Context) (int64, error)
}

type occupationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOccupationRepo(db *gorm.DB, baseLog *logger.Logger) OccupationRepo {
	return &occupationRepo{db: db, log: baseLog.With("repo", "OccupationRepo")}
}

func (r *occupationRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Occupation) (int64, error) {
	t := dbc.DB(r.db)
	if len(rows) == 0 {
		return 0, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *occupationRepo) GetByStandardIDs(dbc dbctx.Context, standardIDs []uuid.UUID) ([]*types.Occupation, error) {
	t := dbc.DB(r.db)
	out := []*types.Occupation{}
	if len(standardIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("standard_id IN ?", standardIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *occupationRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.DB(r.db)
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Occupation{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
