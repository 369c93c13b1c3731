package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"cropgenesis/internal/models/db_models"
)

// PlanStatsRow carries the DB-side aggregation over a user's plans.
type PlanStatsRow struct {
	TotalPlans      int64          `gorm:"column:total_plans"`
	TotalFollowUps  int64          `gorm:"column:total_follow_ups"`
	Seasons         pq.StringArray `gorm:"column:seasons;type:text[]"`
	SoilTypes       pq.StringArray `gorm:"column:soil_types;type:text[]"`
	IrrigationTypes pq.StringArray `gorm:"column:irrigation_types;type:text[]"`
}

type CropPlanRepository interface {
	Insert(ctx context.Context, plan *db_models.CropPlan) error
	Update(ctx context.Context, plan *db_models.CropPlan) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.CropPlan, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.CropPlan, error)
	ListAllByUser(ctx context.Context, userID uuid.UUID) ([]db_models.CropPlan, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, plan *db_models.CropPlan) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
	StatsByUser(ctx context.Context, userID uuid.UUID) (*PlanStatsRow, error)
	FindSimilar(ctx context.Context, userID, excludeID uuid.UUID, embedding pgvector.Vector, limit int) ([]db_models.CropPlan, error)
}

type cropPlanRepository struct {
	db *gorm.DB
}

func NewCropPlanRepository(db *gorm.DB) CropPlanRepository {
	return &cropPlanRepository{db: db}
}

func (r *cropPlanRepository) Insert(ctx context.Context, plan *db_models.CropPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *cropPlanRepository) Update(ctx context.Context, plan *db_models.CropPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *cropPlanRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.CropPlan, error) {
	var plan db_models.CropPlan
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *cropPlanRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.CropPlan, error) {
	var plans []db_models.CropPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *cropPlanRepository) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]db_models.CropPlan, error) {
	var plans []db_models.CropPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *cropPlanRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.CropPlan{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// Delete removes the row for good; history must not resurrect it.
func (r *cropPlanRepository) Delete(ctx context.Context, plan *db_models.CropPlan) error {
	return r.db.WithContext(ctx).Unscoped().Delete(plan).Error
}

func (r *cropPlanRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ?", userID).
		Delete(&db_models.CropPlan{}).Error
}

func (r *cropPlanRepository) StatsByUser(ctx context.Context, userID uuid.UUID) (*PlanStatsRow, error) {
	var row PlanStatsRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_plans,
			COALESCE(SUM(jsonb_array_length(COALESCE(follow_ups, '[]'::jsonb))), 0) AS total_follow_ups,
			array_remove(array_agg(DISTINCT input_season), NULL) AS seasons,
			array_remove(array_agg(DISTINCT input_soil_type), NULL) AS soil_types,
			array_remove(array_agg(DISTINCT input_irrigation), NULL) AS irrigation_types
		FROM crop_plans
		WHERE user_id = ? AND deleted_at IS NULL`, userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *cropPlanRepository) FindSimilar(ctx context.Context, userID, excludeID uuid.UUID, embedding pgvector.Vector, limit int) ([]db_models.CropPlan, error) {
	var plans []db_models.CropPlan
	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM crop_plans
		WHERE user_id = ? AND id <> ? AND deleted_at IS NULL
		ORDER BY embedding <=> ?
		LIMIT ?`, userID, excludeID, embedding.String(), limit).
		Scan(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// paginate is the shared offset/limit scope for listing queries.
func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}
