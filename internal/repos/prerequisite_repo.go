package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type PrerequisiteRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.PrerequisiteRow) error
	ListAll(ctx context.Context) ([]*domain.PrerequisiteRow, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type prerequisiteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPrerequisiteRepo(db *gorm.DB, baseLog *logger.Logger) PrerequisiteRepo {
	return &prerequisiteRepo{db: db, log: baseLog.With("repo", "PrerequisiteRepo")}
}

func (r *prerequisiteRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.PrerequisiteRow) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (r *prerequisiteRepo) ListAll(ctx context.Context) ([]*domain.PrerequisiteRow, error) {
	var rows []*domain.PrerequisiteRow
	if err := r.db.WithContext(ctx).Order("from_id asc, to_id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *prerequisiteRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("1 = 1").Delete(&domain.PrerequisiteRow{}).Error
}
