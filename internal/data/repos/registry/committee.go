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

type CommitteeRepo interface {
	UpsertByCommitteeKey(dbc dbctx.Context, rows []*types.Committee) error
	GetByCommitteeKey(dbc dbctx.Context, key string) (*types.Committee, error)
	MapByCommitteeKey(dbc dbctx.Context) (map[string]uuid.UUID, error)
	Count(dbc dbctx.Context) (int64, error)
}

type committeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommitteeRepo(db *gorm.DB, baseLog *logger.Logger) CommitteeRepo {
	return &committeeRepo{db: db, log: baseLog.With("repo", "CommitteeRepo")}
}

func (r *committeeRepo) UpsertByCommitteeKey(dbc dbctx.Context, rows []*types.Committee) error {
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
			Columns: []clause.Column{{Name: "committee_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"president",
				"secretary",
				"email",
				"phone",
				"street",
				"city",
				"state",
				"postal_code",
				"sector_id",
				"registered_at",
				"updated_at",
			}),
		}).
		Create(&rows).Error
}

func (r *committeeRepo) GetByCommitteeKey(dbc dbctx.Context, key string) (*types.Committee, error) {
	t := dbc.DB(r.db)
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	var row types.Committee
	if err := t.WithContext(dbc.Ctx).
		Where("committee_key = ?", key).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *committeeRepo) MapByCommitteeKey(dbc dbctx.Context) (map[string]uuid.UUID, error) {
	t := dbc.DB(r.db)
	var rows []struct {
		ID           uuid.UUID
		CommitteeKey string
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Committee{}).
		Select("id", "committee_key").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		out[row.CommitteeKey] = row.ID
	}
	return out, nil
}

func (r *committeeRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.DB(r.db)
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Committee{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
