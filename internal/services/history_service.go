package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"cropgenesis/internal/models/db_models"
	"cropgenesis/internal/models/request_models"
	"cropgenesis/internal/models/response_models"
	"cropgenesis/internal/repositories"
	"cropgenesis/pkg/config"
	"cropgenesis/pkg/utils"
)

const (
	historyDescriptionLength = 150
	similarLimit             = 5
)

type HistoryServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID, query request_models.HistoryQuery) (*response_models.PagedHistory, error)
	Delete(ctx context.Context, userID uuid.UUID, itemType string, id uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID, clearType string) error
	Stats(ctx context.Context, userID uuid.UUID) (*response_models.HistoryStats, error)
	Similar(ctx context.Context, userID uuid.UUID, itemType string, id uuid.UUID) ([]response_models.HistoryItem, error)
}

type HistoryService struct {
	planRepo      repositories.CropPlanRepository
	diagnosisRepo repositories.DiagnosisRepository
	store         utils.FileStoreInterface
	cfg           *config.Config
}

func NewHistoryService(
	planRepo repositories.CropPlanRepository,
	diagnosisRepo repositories.DiagnosisRepository,
	store utils.FileStoreInterface,
	cfg *config.Config,
) HistoryServiceInterface {
	return &HistoryService{
		planRepo:      planRepo,
		diagnosisRepo: diagnosisRepo,
		store:         store,
		cfg:           cfg,
	}
}

// List merges both record types into one timeline. The merge happens in the
// application because the two tables have different shapes; per-user volumes
// are small enough that fetching both sides whole is fine.
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID, query request_models.HistoryQuery) (*response_models.PagedHistory, error) {
	historyType := query.Type
	if historyType == "" {
		historyType = "all"
	}

	var items []response_models.HistoryItem

	if historyType == "crop-plans" || historyType == "all" {
		plans, err := s.planRepo.ListAllByUser(ctx, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		for i := range plans {
			items = append(items, planHistoryItem(&plans[i]))
		}
	}
	if historyType == "diagnoses" || historyType == "all" {
		diagnoses, err := s.diagnosisRepo.ListAllByUser(ctx, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		for i := range diagnoses {
			items = append(items, diagnosisHistoryItem(&diagnoses[i]))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})

	page, limit := query.Normalize(defaultPageSize)
	total := int64(len(items))

	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	paged := items[start:end]
	if paged == nil {
		paged = []response_models.HistoryItem{}
	}

	return &response_models.PagedHistory{
		History:    paged,
		Pagination: response_models.NewPagination(page, limit, total),
	}, nil
}

func (s *HistoryService) Delete(ctx context.Context, userID uuid.UUID, itemType string, id uuid.UUID) error {
	switch itemType {
	case response_models.HistoryTypeCropPlan:
		plan, err := s.planRepo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if plan == nil {
			return utils.ErrPlanNotFound
		}
		if err := s.planRepo.Delete(ctx, plan); err != nil {
			return utils.ErrDatabaseError
		}
		removeUploads(s.store, s.cfg.UploadDir, plan.ImageURL, plan.VideoURL, plan.PlanAudioURL)
		return nil

	case response_models.HistoryTypeDiagnosis:
		diagnosis, err := s.diagnosisRepo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if diagnosis == nil {
			return utils.ErrDiagnosisNotFound
		}
		if err := s.diagnosisRepo.Delete(ctx, diagnosis); err != nil {
			return utils.ErrDatabaseError
		}
		removeUploads(s.store, s.cfg.UploadDir, diagnosis.ImageURL, diagnosis.VideoURL, diagnosis.AudioURL)
		return nil

	default:
		return utils.ErrInvalidHistoryType
	}
}

// Clear wipes a whole record type (or both). Files are collected before the
// rows go so their paths are still known.
func (s *HistoryService) Clear(ctx context.Context, userID uuid.UUID, clearType string) error {
	if clearType == "" {
		clearType = "all"
	}
	if clearType != "crop-plans" && clearType != "diagnoses" && clearType != "all" {
		return utils.ErrInvalidHistoryType
	}

	if clearType == "crop-plans" || clearType == "all" {
		plans, err := s.planRepo.ListAllByUser(ctx, userID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if err := s.planRepo.DeleteAllByUser(ctx, userID); err != nil {
			return utils.ErrDatabaseError
		}
		for i := range plans {
			removeUploads(s.store, s.cfg.UploadDir, plans[i].ImageURL, plans[i].VideoURL, plans[i].PlanAudioURL)
		}
	}
	if clearType == "diagnoses" || clearType == "all" {
		diagnoses, err := s.diagnosisRepo.ListAllByUser(ctx, userID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if err := s.diagnosisRepo.DeleteAllByUser(ctx, userID); err != nil {
			return utils.ErrDatabaseError
		}
		for i := range diagnoses {
			removeUploads(s.store, s.cfg.UploadDir, diagnoses[i].ImageURL, diagnoses[i].VideoURL, diagnoses[i].AudioURL)
		}
	}
	return nil
}

func (s *HistoryService) Stats(ctx context.Context, userID uuid.UUID) (*response_models.HistoryStats, error) {
	planRow, err := s.planRepo.StatsByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	diagnosisRow, err := s.diagnosisRepo.StatsByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	lastActivity, err := s.lastActivity(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &response_models.HistoryStats{
		CropPlans: response_models.PlanStats{
			TotalPlans:      planRow.TotalPlans,
			TotalFollowUps:  planRow.TotalFollowUps,
			Seasons:         planRow.Seasons,
			SoilTypes:       planRow.SoilTypes,
			IrrigationTypes: planRow.IrrigationTypes,
		},
		Diagnoses: response_models.DiagnosisStats{
			TotalDiagnoses:   diagnosisRow.TotalDiagnoses,
			HighSeverity:     diagnosisRow.HighSeverity,
			CriticalSeverity: diagnosisRow.CriticalSeverity,
			AvgConfidence:    diagnosisRow.AvgConfidence,
		},
		Total: response_models.HistoryTotals{
			Items:        planRow.TotalPlans + diagnosisRow.TotalDiagnoses,
			LastActivity: lastActivity,
		},
	}, nil
}

// Similar returns the records closest to the given one by embedding
// distance, within the same record type and the same user.
func (s *HistoryService) Similar(ctx context.Context, userID uuid.UUID, itemType string, id uuid.UUID) ([]response_models.HistoryItem, error) {
	switch itemType {
	case response_models.HistoryTypeCropPlan:
		plan, err := s.planRepo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if plan == nil {
			return nil, utils.ErrPlanNotFound
		}
		similar, err := s.planRepo.FindSimilar(ctx, userID, id, plan.Embedding, similarLimit)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		items := make([]response_models.HistoryItem, 0, len(similar))
		for i := range similar {
			items = append(items, planHistoryItem(&similar[i]))
		}
		return items, nil

	case response_models.HistoryTypeDiagnosis:
		diagnosis, err := s.diagnosisRepo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if diagnosis == nil {
			return nil, utils.ErrDiagnosisNotFound
		}
		similar, err := s.diagnosisRepo.FindSimilar(ctx, userID, id, diagnosis.Embedding, similarLimit)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		items := make([]response_models.HistoryItem, 0, len(similar))
		for i := range similar {
			items = append(items, diagnosisHistoryItem(&similar[i]))
		}
		return items, nil

	default:
		return nil, utils.ErrInvalidHistoryType
	}
}

func (s *HistoryService) lastActivity(ctx context.Context, userID uuid.UUID) (int64, error) {
	var last int64
	plans, err := s.planRepo.ListByUser(ctx, userID, 1, 1)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	if len(plans) > 0 {
		last = plans[0].CreatedAt
	}
	diagnoses, err := s.diagnosisRepo.ListByUser(ctx, userID, 1, 1)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	if len(diagnoses) > 0 && diagnoses[0].CreatedAt > last {
		last = diagnoses[0].CreatedAt
	}
	return last, nil
}

func planHistoryItem(plan *db_models.CropPlan) response_models.HistoryItem {
	return response_models.HistoryItem{
		ID:          plan.ID,
		Type:        response_models.HistoryTypeCropPlan,
		Title:       fmt.Sprintf("Crop plan for %s season", plan.Inputs.Season),
		Description: utils.TruncateWithEllipsis(plan.PlanText, historyDescriptionLength),
		Date:        plan.CreatedAt,
		Data:        plan,
	}
}

func diagnosisHistoryItem(diagnosis *db_models.Diagnosis) response_models.HistoryItem {
	title := diagnosis.DiseaseName
	if title == "" {
		title = "Plant diagnosis"
	}
	return response_models.HistoryItem{
		ID:          diagnosis.ID,
		Type:        response_models.HistoryTypeDiagnosis,
		Title:       title,
		Description: utils.TruncateWithEllipsis(diagnosis.DiagnosisText, historyDescriptionLength),
		Date:        diagnosis.CreatedAt,
		Data:        diagnosis,
	}
}
