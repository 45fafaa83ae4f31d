package jobs

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/pkg/logger"
)

type SyncJobRepo interface {
	Create(dbc dbctx.Context, row *types.SyncJob) (*types.SyncJob, error)
	GetLatestByKind(dbc dbctx.Context, jobKind string) (*types.SyncJob, error)
	Count(dbc dbctx.Context) (int64, error)
}

type syncJobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSyncJobRepo(db *gorm.DB, baseLog *logger.Logger) SyncJobRepo {
	return &syncJobRepo{db: db, log: baseLog.With("repo", "SyncJobRepo")}
}

func (r *syncJobRepo) Create(dbc dbctx.Context, row *types.SyncJob) (*types.SyncJob, error) {
	t := dbc.DB(r.db)
	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *syncJobRepo) GetLatestByKind(dbc dbctx.Context, jobKind string) (*types.SyncJob, error) {
	t := dbc.DB(r.db)
	jobKind = strings.TrimSpace(jobKind)
	if jobKind == "" {
		return nil, nil
	}
	var row types.SyncJob
	if err := t.WithContext(dbc.Ctx).
		Where("job_kind = ?", jobKind).
		Order("started_at DESC").
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *syncJobRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.DB(r.db)
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.SyncJob{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
