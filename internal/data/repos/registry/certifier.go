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

type CertifierRepo interface {
	UpsertByCertifierKey(dbc dbctx.Context, rows []*types.Certifier) error
	MapByCertifierKey(dbc dbctx.Context) (map[string]uuid.UUID, error)
	Count(dbc dbctx.Context) (int64, error)
}

type certifierRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCertifierRepo(db *gorm.DB, baseLog *logger.Logger) CertifierRepo {
	return &certifierRepo{db: db, log: baseLog.With("repo", "CertifierRepo")}
}

func (r *certifierRepo) UpsertByCertifierKey(dbc dbctx.Context, rows []*types.Certifier) error {
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
			Columns: []clause.Column{{Name: "certifier_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"kind",
				"alt_names",
				"normalized_key",
				"updated_at",
			}),
		}).
		Create(&rows).Error
}

func (r *certifierRepo) MapByCertifierKey(dbc dbctx.Context) (map[string]uuid.UUID, error) {
	t := dbc.DB(r.db)
	var rows []struct {
		ID           uuid.UUID
		CertifierKey string
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Certifier{}).
		Select("id", "certifier_key").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		out[row.CertifierKey] = row.ID
	}
	return out, nil
}

func (r *certifierRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.DB(r.db)
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Certifier{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
