package registry

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/pkg/logger"
)

type OfferingRepo interface {
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Offering) (int64, error)
	GetByCenterIDs(dbc dbctx.Context, centerIDs []uuid.UUID) ([]*types.Offering, error)
	Count(dbc dbctx.Context) (int64, error)
}

type offeringRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOfferingRepo(db *gorm.DB, baseLog *logger.Logger) OfferingRepo {
	return &offeringRepo{db: db, log: baseLog.With("repo", "OfferingRepo")}
}

func (r *offeringRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Offering) (int64, error) {
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

func (r *offeringRepo) GetByCenterIDs(dbc dbctx.Context, centerIDs []uuid.UUID) ([]*types.Offering, error) {
	t := dbc.DB(r.db)
	out := []*types.Offering{}
	if len(centerIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("center_id IN ?", centerIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *offeringRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.DB(r.db)
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Offering{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
