package services

import (
	"context"
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
	"cropgenesis/pkg/utils"
)

const maxRemedyLength = 2000

type DiagnosisServiceInterface interface {
	Analyze(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*response_models.DiagnosisResult, error)
	FollowUp(ctx context.Context, userID uuid.UUID, request request_models.DiagnosisFollowUpRequest) (*response_models.FollowUpResult, error)
	GetByID(ctx context.Context, userID, diagnosisID uuid.UUID) (*db_models.Diagnosis, error)
	List(ctx context.Context, userID uuid.UUID, query request_models.PaginationQuery) (*response_models.PagedDiagnoses, error)
	Delete(ctx context.Context, userID, diagnosisID uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) (*response_models.DiagnosisStats, error)
	DiseasesList(ctx context.Context, userID uuid.UUID) ([]response_models.DiseaseGroup, error)
}

type DiagnosisService struct {
	diagnosisRepo repositories.DiagnosisRepository
	userRepo      repositories.UserRepository
	ai            utils.AIClientInterface
	tts           utils.TTSClientInterface
	store         utils.FileStoreInterface
	cfg           *config.Config
}

func NewDiagnosisService(
	diagnosisRepo repositories.DiagnosisRepository,
	userRepo repositories.UserRepository,
	ai utils.AIClientInterface,
	tts utils.TTSClientInterface,
	store utils.FileStoreInterface,
	cfg *config.Config,
) DiagnosisServiceInterface {
	return &DiagnosisService{
		diagnosisRepo: diagnosisRepo,
		userRepo:      userRepo,
		ai:            ai,
		tts:           tts,
		store:         store,
		cfg:           cfg,
	}
}

func (s *DiagnosisService) Analyze(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*response_models.DiagnosisResult, error) {
	if file == nil {
		return nil, utils.ErrFileRequired
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	saved, err := s.store.SaveMedia(file)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(saved.Path)
	if err != nil {
		s.store.Remove(saved.Path)
		return nil, utils.ErrDatabaseError
	}

	text, err := s.ai.AnalyzeDisease(ctx, data, saved.MIME, user.Language)
	if err != nil {
		s.store.Remove(saved.Path)
		return nil, classifyAIError(err)
	}
	text = utils.TruncateWithEllipsis(text, s.cfg.DiagnosisTextCap)

	fields := utils.ExtractDiagnosisFields(text)
	remedy := utils.TruncateWithEllipsis(utils.ExtractRemedy(text), maxRemedyLength)
	audioURL := s.synthesize(ctx, text, user.Language)

	diagnosis := &db_models.Diagnosis{
		UserID:        userID,
		FileType:      saved.Kind,
		FileName:      saved.OriginalName,
		FileSize:      saved.Size,
		DiagnosisText: text,
		Remedy:        remedy,
		AudioURL:      audioURL,
		Confidence:    fields.Confidence,
		DiseaseName:   utils.TruncateWithEllipsis(fields.DiseaseName, 500),
		Severity:      fields.Severity,
		AffectedArea:  fields.AffectedArea,
		TreatmentType: fields.TreatmentType,
		EstimatedCost: fields.EstimatedCost,
		EstimatedTime: utils.TruncateWithEllipsis(fields.EstimatedTime, 100),
		Tags:          pq.StringArray{fields.Severity, fields.AffectedArea},
		Embedding:     utils.EmbedText(text),
	}
	if saved.Kind == utils.MediaKindVideo {
		diagnosis.VideoURL = saved.URL
	} else {
		diagnosis.ImageURL = saved.URL
	}

	if err := s.diagnosisRepo.Insert(ctx, diagnosis); err != nil {
		s.store.Remove(saved.Path)
		removeUploads(s.store, s.cfg.UploadDir, audioURL)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.DiagnosisResult{
		Diagnosis: diagnosis,
		AudioURL:  audioURL,
	}, nil
}

func (s *DiagnosisService) FollowUp(ctx context.Context, userID uuid.UUID, request request_models.DiagnosisFollowUpRequest) (*response_models.FollowUpResult, error) {
	diagnosisID, err := uuid.Parse(request.DiagnosisID)
	if err != nil {
		return nil, utils.ErrDiagnosisNotFound
	}

	diagnosis, err := s.diagnosisRepo.FindByIDAndUser(ctx, diagnosisID, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if diagnosis == nil {
		return nil, utils.ErrDiagnosisNotFound
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	answer, err := s.ai.GenerateFollowUp(ctx, diagnosis.DiagnosisText, request.Question, user.Language)
	if err != nil {
		return nil, classifyAIError(err)
	}

	audioURL := s.synthesize(ctx, answer, user.Language)

	diagnosis.FollowUps = append(diagnosis.FollowUps, db_models.FollowUp{
		Question:  request.Question,
		Answer:    answer,
		Timestamp: time.Now().Unix(),
	})
	if err := s.diagnosisRepo.Update(ctx, diagnosis); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.FollowUpResult{
		Answer:        answer,
		AudioURL:      audioURL,
		FollowUpCount: len(diagnosis.FollowUps),
	}, nil
}

func (s *DiagnosisService) GetByID(ctx context.Context, userID, diagnosisID uuid.UUID) (*db_models.Diagnosis, error) {
	diagnosis, err := s.diagnosisRepo.FindByIDAndUser(ctx, diagnosisID, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if diagnosis == nil {
		return nil, utils.ErrDiagnosisNotFound
	}
	return diagnosis, nil
}

func (s *DiagnosisService) List(ctx context.Context, userID uuid.UUID, query request_models.PaginationQuery) (*response_models.PagedDiagnoses, error) {
	page, limit := query.Normalize(defaultPageSize)

	diagnoses, err := s.diagnosisRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	total, err := s.diagnosisRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.PagedDiagnoses{
		Diagnoses:  diagnoses,
		Pagination: response_models.NewPagination(page, limit, total),
	}, nil
}

func (s *DiagnosisService) Delete(ctx context.Context, userID, diagnosisID uuid.UUID) error {
	diagnosis, err := s.diagnosisRepo.FindByIDAndUser(ctx, diagnosisID, userID)
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
}

func (s *DiagnosisService) Stats(ctx context.Context, userID uuid.UUID) (*response_models.DiagnosisStats, error) {
	row, err := s.diagnosisRepo.StatsByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.DiagnosisStats{
		TotalDiagnoses:   row.TotalDiagnoses,
		HighSeverity:     row.HighSeverity,
		CriticalSeverity: row.CriticalSeverity,
		AvgConfidence:    row.AvgConfidence,
	}, nil
}

func (s *DiagnosisService) DiseasesList(ctx context.Context, userID uuid.UUID) ([]response_models.DiseaseGroup, error) {
	rows, err := s.diagnosisRepo.DiseaseGroupsByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	groups := make([]response_models.DiseaseGroup, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, response_models.DiseaseGroup{
			DiseaseName:    row.DiseaseName,
			Count:          row.Count,
			Severity:       row.Severity,
			LastOccurrence: row.LastOccurrence,
		})
	}
	return groups, nil
}

func (s *DiagnosisService) synthesize(ctx context.Context, text, language string) string {
	audioURL, err := s.tts.Synthesize(ctx, text, language)
	if err != nil {
		log.Printf("TTS synthesis failed: %v", err)
		return ""
	}
	return audioURL
}
