package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type LearningObjectRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.LearningObjectRow) error
	ListAll(ctx context.Context) ([]*domain.LearningObjectRow, error)
	Count(ctx context.Context) (int64, error)
}

type learningObjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningObjectRepo(db *gorm.DB, baseLog *logger.Logger) LearningObjectRepo {
	return &learningObjectRepo{db: db, log: baseLog.With("repo", "LearningObjectRepo")}
}

func (r *learningObjectRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.LearningObjectRow) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lo_id"}},
			UpdateAll: true,
		}).
		Create(&rows).Error
}

func (r *learningObjectRepo) ListAll(ctx context.Context) ([]*domain.LearningObjectRow, error) {
	var rows []*domain.LearningObjectRow
	if err := r.db.WithContext(ctx).Order("lo_id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *learningObjectRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.LearningObjectRow{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
