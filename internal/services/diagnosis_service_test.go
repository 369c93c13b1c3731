package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"

	"cropgenesis/internal/models/db_models"
	"cropgenesis/internal/models/request_models"
	"cropgenesis/internal/repositories"
	"cropgenesis/pkg/utils"
)

func newDiagService(t *testing.T, repo *diagnosisRepoMock, userRepo *userRepoMock, ai utils.AIClientInterface, tts *ttsMock, store *storeMock) DiagnosisServiceInterface {
	t.Helper()
	cfg := testConfig(t)
	if store.dir == "" {
		store.dir = cfg.UploadDir
	}
	return NewDiagnosisService(repo, userRepo, ai, tts, store, cfg)
}

const analysisFixture = `Disease: Leaf Spot
Confidence: 72%
Severity: high
Affected: leaves
Treatment Options: Remove infected leaves and spray copper fungicide.
8. **Prevention**: Avoid overhead watering.`

func TestAnalyzeStoresExtractedFields(t *testing.T) {
	user := testUser()
	repo := newDiagnosisRepoMock()
	tts := &ttsMock{url: "/uploads/audio.mp3"}
	service := newDiagService(t, repo, newUserRepoMock(user), &aiMock{analysisText: analysisFixture}, tts, &storeMock{})

	result, err := service.Analyze(context.Background(), user.ID, &multipart.FileHeader{Filename: "leaf.png", Size: 11})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	d := result.Diagnosis
	if d.DiseaseName != "Leaf Spot" {
		t.Errorf("disease = %q, want Leaf Spot", d.DiseaseName)
	}
	if d.Confidence == nil || *d.Confidence != 72 {
		t.Errorf("confidence = %v, want 72", d.Confidence)
	}
	if d.Severity != "high" || d.AffectedArea != "leaves" {
		t.Errorf("severity/area = %q/%q", d.Severity, d.AffectedArea)
	}
	if d.Remedy == "" {
		t.Error("remedy section should have been extracted")
	}
	if d.ImageURL == "" || d.VideoURL != "" {
		t.Errorf("image upload should set ImageURL only, got %q / %q", d.ImageURL, d.VideoURL)
	}
	if d.AudioURL != "/uploads/audio.mp3" {
		t.Errorf("audio url = %q", d.AudioURL)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(repo.inserted))
	}
}

func TestAnalyzeWithoutFile(t *testing.T) {
	user := testUser()
	service := newDiagService(t, newDiagnosisRepoMock(), newUserRepoMock(user), &aiMock{}, &ttsMock{}, &storeMock{})

	_, err := service.Analyze(context.Background(), user.ID, nil)
	if !errors.Is(err, utils.ErrFileRequired) {
		t.Fatalf("err = %v, want ErrFileRequired", err)
	}
}

func TestAnalyzeCleansUpFileWhenAIFails(t *testing.T) {
	user := testUser()
	repo := newDiagnosisRepoMock()
	store := &storeMock{}
	service := newDiagService(t, repo, newUserRepoMock(user), utils.NewUnconfiguredAIClient(), &ttsMock{}, store)

	_, err := service.Analyze(context.Background(), user.ID, &multipart.FileHeader{Filename: "leaf.png", Size: 11})
	if !errors.Is(err, utils.ErrAIServiceNotConfigured) {
		t.Fatalf("err = %v, want ErrAIServiceNotConfigured", err)
	}
	if len(repo.inserted) != 0 {
		t.Error("no diagnosis may be stored when the AI call fails")
	}
	if len(store.removed) != 1 {
		t.Errorf("uploaded file should be cleaned up, removed = %v", store.removed)
	}
}

func TestAnalyzeTTSFailureIsNotFatal(t *testing.T) {
	user := testUser()
	repo := newDiagnosisRepoMock()
	service := newDiagService(t, repo, newUserRepoMock(user), &aiMock{analysisText: analysisFixture},
		&ttsMock{err: errors.New("tts down")}, &storeMock{})

	result, err := service.Analyze(context.Background(), user.ID, &multipart.FileHeader{Filename: "leaf.png", Size: 11})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.AudioURL != "" {
		t.Errorf("audio url = %q, want empty on TTS failure", result.AudioURL)
	}
	if len(repo.inserted) != 1 {
		t.Error("diagnosis should still be stored without audio")
	}
}

func TestDiagnosisFollowUpUnknownID(t *testing.T) {
	user := testUser()
	ai := &aiMock{followUpText: "answer"}
	service := newDiagService(t, newDiagnosisRepoMock(), newUserRepoMock(user), ai, &ttsMock{}, &storeMock{})

	_, err := service.FollowUp(context.Background(), user.ID, request_models.DiagnosisFollowUpRequest{
		DiagnosisID: uuid.NewString(),
		Question:    "is it contagious?",
	})
	if !errors.Is(err, utils.ErrDiagnosisNotFound) {
		t.Fatalf("err = %v, want ErrDiagnosisNotFound", err)
	}
	if ai.calls != 0 {
		t.Error("AI must not be called for a missing diagnosis")
	}
}

func TestDiagnosisDeleteRemovesFiles(t *testing.T) {
	user := testUser()
	diagnosis := &db_models.Diagnosis{
		UserID:   user.ID,
		ImageURL: "/uploads/leaf.png",
		AudioURL: "/uploads/audio.mp3",
	}
	diagnosis.ID = uuid.New()
	repo := newDiagnosisRepoMock(diagnosis)
	store := &storeMock{}
	service := newDiagService(t, repo, newUserRepoMock(user), &aiMock{}, &ttsMock{}, store)

	if err := service.Delete(context.Background(), user.ID, diagnosis.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Error("diagnosis row was not deleted")
	}
	if len(store.removed) != 2 {
		t.Errorf("expected 2 file removals, got %v", store.removed)
	}
}

func TestDiseasesListMapsGroups(t *testing.T) {
	user := testUser()
	repo := newDiagnosisRepoMock()
	repo.groups = []repositories.DiseaseGroupRow{
		{DiseaseName: "Leaf Spot", Count: 3, Severity: "high", LastOccurrence: 1700000000},
		{DiseaseName: "Rust", Count: 1, Severity: "medium", LastOccurrence: 1690000000},
	}
	service := newDiagService(t, repo, newUserRepoMock(user), &aiMock{}, &ttsMock{}, &storeMock{})

	groups, err := service.DiseasesList(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("DiseasesList: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("len = %d, want 2", len(groups))
	}
	if groups[0].DiseaseName != "Leaf Spot" || groups[0].Count != 3 {
		t.Errorf("unexpected first group: %+v", groups[0])
	}
}
