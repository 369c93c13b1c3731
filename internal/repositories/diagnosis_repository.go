package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"cropgenesis/internal/models/db_models"
)

type DiagnosisStatsRow struct {
	TotalDiagnoses   int64   `gorm:"column:total_diagnoses"`
	HighSeverity     int64   `gorm:"column:high_severity"`
	CriticalSeverity int64   `gorm:"column:critical_severity"`
	AvgConfidence    float64 `gorm:"column:avg_confidence"`
}

type DiseaseGroupRow struct {
	DiseaseName    string `gorm:"column:disease_name"`
	Count          int64  `gorm:"column:count"`
	Severity       string `gorm:"column:severity"`
	LastOccurrence int64  `gorm:"column:last_occurrence"`
}

type DiagnosisRepository interface {
	Insert(ctx context.Context, diagnosis *db_models.Diagnosis) error
	Update(ctx context.Context, diagnosis *db_models.Diagnosis) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Diagnosis, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Diagnosis, error)
	ListAllByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Diagnosis, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, diagnosis *db_models.Diagnosis) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
	StatsByUser(ctx context.Context, userID uuid.UUID) (*DiagnosisStatsRow, error)
	DiseaseGroupsByUser(ctx context.Context, userID uuid.UUID) ([]DiseaseGroupRow, error)
	FindSimilar(ctx context.Context, userID, excludeID uuid.UUID, embedding pgvector.Vector, limit int) ([]db_models.Diagnosis, error)
}

type diagnosisRepository struct {
	db *gorm.DB
}

func NewDiagnosisRepository(db *gorm.DB) DiagnosisRepository {
	return &diagnosisRepository{db: db}
}

func (r *diagnosisRepository) Insert(ctx context.Context, diagnosis *db_models.Diagnosis) error {
	return r.db.WithContext(ctx).Create(diagnosis).Error
}

func (r *diagnosisRepository) Update(ctx context.Context, diagnosis *db_models.Diagnosis) error {
	return r.db.WithContext(ctx).Save(diagnosis).Error
}

func (r *diagnosisRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Diagnosis, error) {
	var diagnosis db_models.Diagnosis
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&diagnosis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &diagnosis, nil
}

func (r *diagnosisRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Diagnosis, error) {
	var diagnoses []db_models.Diagnosis
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Diagnosis, error) {
	var diagnoses []db_models.Diagnosis
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Diagnosis{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// Delete removes the row for good so the backing media file can go too.
func (r *diagnosisRepository) Delete(ctx context.Context, diagnosis *db_models.Diagnosis) error {
	return r.db.WithContext(ctx).Unscoped().Delete(diagnosis).Error
}

func (r *diagnosisRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ?", userID).
		Delete(&db_models.Diagnosis{}).Error
}

func (r *diagnosisRepository) StatsByUser(ctx context.Context, userID uuid.UUID) (*DiagnosisStatsRow, error) {
	var row DiagnosisStatsRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_diagnoses,
			COUNT(*) FILTER (WHERE severity = 'high') AS high_severity,
			COUNT(*) FILTER (WHERE severity = 'critical') AS critical_severity,
			COALESCE(AVG(confidence), 0) AS avg_confidence
		FROM diagnoses
		WHERE user_id = ? AND deleted_at IS NULL`, userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *diagnosisRepository) DiseaseGroupsByUser(ctx context.Context, userID uuid.UUID) ([]DiseaseGroupRow, error) {
	var rows []DiseaseGroupRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			disease_name,
			COUNT(*) AS count,
			(array_agg(severity ORDER BY created_at DESC))[1] AS severity,
			MAX(created_at) AS last_occurrence
		FROM diagnoses
		WHERE user_id = ? AND disease_name <> '' AND deleted_at IS NULL
		GROUP BY disease_name
		ORDER BY count DESC`, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *diagnosisRepository) FindSimilar(ctx context.Context, userID, excludeID uuid.UUID, embedding pgvector.Vector, limit int) ([]db_models.Diagnosis, error) {
	var diagnoses []db_models.Diagnosis
	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM diagnoses
		WHERE user_id = ? AND id <> ? AND deleted_at IS NULL
		ORDER BY embedding <=> ?
		LIMIT ?`, userID, excludeID, embedding.String(), limit).
		Scan(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}
