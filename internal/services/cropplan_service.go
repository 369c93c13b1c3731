package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cropgenesis/internal/models/db_models"
	"cropgenesis/internal/models/request_models"
	"cropgenesis/internal/models/response_models"
	"cropgenesis/internal/repositories"
	"cropgenesis/pkg/config"
	"cropgenesis/pkg/memcache"
	"cropgenesis/pkg/utils"
)

const (
	defaultPageSize = 10
	statusCacheTTL  = 5 * time.Minute
)

type CropPlanServiceInterface interface {
	Generate(ctx context.Context, userID uuid.UUID, request request_models.CropPlanRequest, image, video *multipart.FileHeader) (*response_models.CropPlanResult, error)
	FollowUp(ctx context.Context, userID uuid.UUID, request request_models.PlanFollowUpRequest) (*response_models.FollowUpResult, error)
	GetByID(ctx context.Context, userID, planID uuid.UUID) (*db_models.CropPlan, error)
	List(ctx context.Context, userID uuid.UUID, query request_models.PaginationQuery) (*response_models.PagedCropPlans, error)
	Delete(ctx context.Context, userID, planID uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) (*response_models.PlanStats, error)
	Status(ctx context.Context) *response_models.AIServiceStatus
}

type CropPlanService struct {
	planRepo    repositories.CropPlanRepository
	userRepo    repositories.UserRepository
	ai          utils.AIClientInterface
	tts         utils.TTSClientInterface
	store       utils.FileStoreInterface
	statusCache memcache.AIStatusStore
	cfg         *config.Config
}

func NewCropPlanService(
	planRepo repositories.CropPlanRepository,
	userRepo repositories.UserRepository,
	ai utils.AIClientInterface,
	tts utils.TTSClientInterface,
	store utils.FileStoreInterface,
	statusCache memcache.AIStatusStore,
	cfg *config.Config,
) CropPlanServiceInterface {
	return &CropPlanService{
		planRepo:    planRepo,
		userRepo:    userRepo,
		ai:          ai,
		tts:         tts,
		store:       store,
		statusCache: statusCache,
		cfg:         cfg,
	}
}

func (s *CropPlanService) Generate(ctx context.Context, userID uuid.UUID, request request_models.CropPlanRequest, image, video *multipart.FileHeader) (*response_models.CropPlanResult, error) {
	language, err := s.resolveLanguage(ctx, userID, request.PreferredLanguage)
	if err != nil {
		return nil, err
	}

	var savedImage, savedVideo *utils.SavedFile
	cleanup := func() {
		if savedImage != nil {
			s.store.Remove(savedImage.Path)
		}
		if savedVideo != nil {
			s.store.Remove(savedVideo.Path)
		}
	}

	if image != nil {
		savedImage, err = s.store.SaveImage(image)
		if err != nil {
			return nil, err
		}
	}
	if video != nil {
		savedVideo, err = s.store.SaveVideo(video)
		if err != nil {
			cleanup()
			return nil, err
		}
	}

	inputs := utils.PlanPromptInputs{
		SoilType:          request.SoilType,
		LandSize:          request.LandSize,
		Irrigation:        request.Irrigation,
		Season:            request.Season,
		PreferredLanguage: language,
		AdditionalNotes:   request.AdditionalNotes,
	}
	if savedImage != nil {
		data, err := os.ReadFile(savedImage.Path)
		if err != nil {
			cleanup()
			return nil, utils.ErrDatabaseError
		}
		inputs.ImageData = data
		inputs.ImageMIME = savedImage.MIME
	}

	planText, err := s.ai.GenerateCropPlan(ctx, inputs)
	if err != nil {
		cleanup()
		return nil, classifyAIError(err)
	}
	planText = utils.CapText(planText, s.cfg.PlanTextCap, utils.PlanContinuationHint)

	audioURL := s.synthesize(ctx, planText, language)

	plan := &db_models.CropPlan{
		UserID:       userID,
		PlanText:     planText,
		PlanAudioURL: audioURL,
		Inputs: db_models.CropPlanInputs{
			SoilType:          request.SoilType,
			LandSize:          request.LandSize,
			Irrigation:        request.Irrigation,
			Season:            request.Season,
			PreferredLanguage: language,
			AdditionalNotes:   request.AdditionalNotes,
		},
		Tags:      pq.StringArray{request.Season, request.SoilType, request.Irrigation},
		Embedding: utils.EmbedText(planText),
	}
	if savedImage != nil {
		plan.ImageURL = savedImage.URL
	}
	if savedVideo != nil {
		plan.VideoURL = savedVideo.URL
	}

	if err := s.planRepo.Insert(ctx, plan); err != nil {
		cleanup()
		removeUploads(s.store, s.cfg.UploadDir, audioURL)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CropPlanResult{
		Plan:     plan,
		AudioURL: audioURL,
	}, nil
}

func (s *CropPlanService) FollowUp(ctx context.Context, userID uuid.UUID, request request_models.PlanFollowUpRequest) (*response_models.FollowUpResult, error) {
	planID, err := uuid.Parse(request.PlanID)
	if err != nil {
		return nil, utils.ErrPlanNotFound
	}

	plan, err := s.planRepo.FindByIDAndUser(ctx, planID, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	answer, err := s.ai.GenerateFollowUp(ctx, plan.PlanText, request.Question, plan.Inputs.PreferredLanguage)
	if err != nil {
		return nil, classifyAIError(err)
	}

	audioURL := s.synthesize(ctx, answer, plan.Inputs.PreferredLanguage)

	plan.FollowUps = append(plan.FollowUps, db_models.FollowUp{
		Question:  request.Question,
		Answer:    answer,
		Timestamp: time.Now().Unix(),
	})
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.FollowUpResult{
		Answer:        answer,
		AudioURL:      audioURL,
		FollowUpCount: len(plan.FollowUps),
	}, nil
}

func (s *CropPlanService) GetByID(ctx context.Context, userID, planID uuid.UUID) (*db_models.CropPlan, error) {
	plan, err := s.planRepo.FindByIDAndUser(ctx, planID, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return plan, nil
}

func (s *CropPlanService) List(ctx context.Context, userID uuid.UUID, query request_models.PaginationQuery) (*response_models.PagedCropPlans, error) {
	page, limit := query.Normalize(defaultPageSize)

	plans, err := s.planRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	total, err := s.planRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.PagedCropPlans{
		Plans:      plans,
		Pagination: response_models.NewPagination(page, limit, total),
	}, nil
}

func (s *CropPlanService) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	plan, err := s.planRepo.FindByIDAndUser(ctx, planID, userID)
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
}

func (s *CropPlanService) Stats(ctx context.Context, userID uuid.UUID) (*response_models.PlanStats, error) {
	row, err := s.planRepo.StatsByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.PlanStats{
		TotalPlans:      row.TotalPlans,
		TotalFollowUps:  row.TotalFollowUps,
		Seasons:         row.Seasons,
		SoilTypes:       row.SoilTypes,
		IrrigationTypes: row.IrrigationTypes,
	}, nil
}

// Status reports Gemini reachability, probing at most once per cache TTL so
// a polling dashboard does not burn model quota.
func (s *CropPlanService) Status(ctx context.Context) *response_models.AIServiceStatus {
	hasKey := s.ai.Configured()
	if !hasKey {
		return &response_models.AIServiceStatus{
			HasAPIKey: false,
			Status:    "not_configured",
			Message:   "GEMINI_API_KEY is not set",
		}
	}

	if cached, ok := s.statusCache.Get(); ok {
		return &response_models.AIServiceStatus{
			HasAPIKey: true,
			Status:    cached.Status,
			Message:   cached.Message,
		}
	}

	status := memcache.ServiceStatus{Status: "connected", Message: "AI service is working properly"}
	if err := s.ai.TestConnection(ctx); err != nil {
		log.Printf("AI connectivity probe failed: %v", err)
		status = memcache.ServiceStatus{Status: "error", Message: "AI service is not responding"}
	}
	s.statusCache.Set(status, statusCacheTTL)

	return &response_models.AIServiceStatus{
		HasAPIKey: true,
		Status:    status.Status,
		Message:   status.Message,
	}
}

func (s *CropPlanService) resolveLanguage(ctx context.Context, userID uuid.UUID, preferred string) (string, error) {
	if preferred != "" {
		return preferred, nil
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if user == nil {
		return "", utils.ErrUserNotFound
	}
	if user.Language == "" {
		return "en", nil
	}
	return user.Language, nil
}

// synthesize is best-effort: a failed TTS call logs and returns no audio
// rather than failing the whole request.
func (s *CropPlanService) synthesize(ctx context.Context, text, language string) string {
	audioURL, err := s.tts.Synthesize(ctx, text, language)
	if err != nil {
		log.Printf("TTS synthesis failed: %v", err)
		return ""
	}
	return audioURL
}

// classifyAIError keeps the misconfiguration sentinel intact and folds every
// other upstream failure into the generic unavailable error.
func classifyAIError(err error) error {
	if errors.Is(err, utils.ErrAIServiceNotConfigured) {
		return utils.ErrAIServiceNotConfigured
	}
	log.Printf("AI generation failed: %v", err)
	return utils.ErrAIServiceUnavailable
}
