package services

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"cropgenesis/internal/models/db_models"
	"cropgenesis/internal/repositories"
	"cropgenesis/pkg/utils"
)

type userRepoMock struct {
	users map[uuid.UUID]*db_models.User
}

func newUserRepoMock(users ...*db_models.User) *userRepoMock {
	m := &userRepoMock{users: map[uuid.UUID]*db_models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *userRepoMock) Insert(_ context.Context, user *db_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *userRepoMock) FindByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	return m.users[id], nil
}

func (m *userRepoMock) FindByPhone(_ context.Context, phone string) (*db_models.User, error) {
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (m *userRepoMock) Update(_ context.Context, user *db_models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *userRepoMock) TouchLastLogin(context.Context, uuid.UUID) error { return nil }

type planRepoMock struct {
	plans     map[uuid.UUID]*db_models.CropPlan
	inserted  []*db_models.CropPlan
	updated   []*db_models.CropPlan
	deleted   []uuid.UUID
	statsRow  *repositories.PlanStatsRow
	similar   []db_models.CropPlan
	clearedBy []uuid.UUID
}

func newPlanRepoMock(plans ...*db_models.CropPlan) *planRepoMock {
	m := &planRepoMock{plans: map[uuid.UUID]*db_models.CropPlan{}}
	for _, p := range plans {
		m.plans[p.ID] = p
	}
	return m
}

func (m *planRepoMock) Insert(_ context.Context, plan *db_models.CropPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	m.plans[plan.ID] = plan
	m.inserted = append(m.inserted, plan)
	return nil
}

func (m *planRepoMock) Update(_ context.Context, plan *db_models.CropPlan) error {
	m.plans[plan.ID] = plan
	m.updated = append(m.updated, plan)
	return nil
}

func (m *planRepoMock) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*db_models.CropPlan, error) {
	plan, ok := m.plans[id]
	if !ok || plan.UserID != userID {
		return nil, nil
	}
	return plan, nil
}

func (m *planRepoMock) ListByUser(_ context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.CropPlan, error) {
	all, _ := m.ListAllByUser(context.Background(), userID)
	return all, nil
}

func (m *planRepoMock) ListAllByUser(_ context.Context, userID uuid.UUID) ([]db_models.CropPlan, error) {
	var out []db_models.CropPlan
	for _, p := range m.plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *planRepoMock) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	all, _ := m.ListAllByUser(context.Background(), userID)
	return int64(len(all)), nil
}

func (m *planRepoMock) Delete(_ context.Context, plan *db_models.CropPlan) error {
	delete(m.plans, plan.ID)
	m.deleted = append(m.deleted, plan.ID)
	return nil
}

func (m *planRepoMock) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	for id, p := range m.plans {
		if p.UserID == userID {
			delete(m.plans, id)
		}
	}
	m.clearedBy = append(m.clearedBy, userID)
	return nil
}

func (m *planRepoMock) StatsByUser(context.Context, uuid.UUID) (*repositories.PlanStatsRow, error) {
	if m.statsRow != nil {
		return m.statsRow, nil
	}
	return &repositories.PlanStatsRow{}, nil
}

func (m *planRepoMock) FindSimilar(context.Context, uuid.UUID, uuid.UUID, pgvector.Vector, int) ([]db_models.CropPlan, error) {
	return m.similar, nil
}

type diagnosisRepoMock struct {
	diagnoses map[uuid.UUID]*db_models.Diagnosis
	inserted  []*db_models.Diagnosis
	deleted   []uuid.UUID
	statsRow  *repositories.DiagnosisStatsRow
	groups    []repositories.DiseaseGroupRow
	similar   []db_models.Diagnosis
}

func newDiagnosisRepoMock(diagnoses ...*db_models.Diagnosis) *diagnosisRepoMock {
	m := &diagnosisRepoMock{diagnoses: map[uuid.UUID]*db_models.Diagnosis{}}
	for _, d := range diagnoses {
		m.diagnoses[d.ID] = d
	}
	return m
}

func (m *diagnosisRepoMock) Insert(_ context.Context, diagnosis *db_models.Diagnosis) error {
	if diagnosis.ID == uuid.Nil {
		diagnosis.ID = uuid.New()
	}
	m.diagnoses[diagnosis.ID] = diagnosis
	m.inserted = append(m.inserted, diagnosis)
	return nil
}

func (m *diagnosisRepoMock) Update(_ context.Context, diagnosis *db_models.Diagnosis) error {
	m.diagnoses[diagnosis.ID] = diagnosis
	return nil
}

func (m *diagnosisRepoMock) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*db_models.Diagnosis, error) {
	diagnosis, ok := m.diagnoses[id]
	if !ok || diagnosis.UserID != userID {
		return nil, nil
	}
	return diagnosis, nil
}

func (m *diagnosisRepoMock) ListByUser(_ context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Diagnosis, error) {
	return m.ListAllByUser(context.Background(), userID)
}

func (m *diagnosisRepoMock) ListAllByUser(_ context.Context, userID uuid.UUID) ([]db_models.Diagnosis, error) {
	var out []db_models.Diagnosis
	for _, d := range m.diagnoses {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *diagnosisRepoMock) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	all, _ := m.ListAllByUser(context.Background(), userID)
	return int64(len(all)), nil
}

func (m *diagnosisRepoMock) Delete(_ context.Context, diagnosis *db_models.Diagnosis) error {
	delete(m.diagnoses, diagnosis.ID)
	m.deleted = append(m.deleted, diagnosis.ID)
	return nil
}

func (m *diagnosisRepoMock) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	for id, d := range m.diagnoses {
		if d.UserID == userID {
			delete(m.diagnoses, id)
		}
	}
	return nil
}

func (m *diagnosisRepoMock) StatsByUser(context.Context, uuid.UUID) (*repositories.DiagnosisStatsRow, error) {
	if m.statsRow != nil {
		return m.statsRow, nil
	}
	return &repositories.DiagnosisStatsRow{}, nil
}

func (m *diagnosisRepoMock) DiseaseGroupsByUser(context.Context, uuid.UUID) ([]repositories.DiseaseGroupRow, error) {
	return m.groups, nil
}

func (m *diagnosisRepoMock) FindSimilar(context.Context, uuid.UUID, uuid.UUID, pgvector.Vector, int) ([]db_models.Diagnosis, error) {
	return m.similar, nil
}

// aiMock scripts the three generation calls; a nil error field means the
// corresponding canned response is returned.
type aiMock struct {
	planText     string
	followUpText string
	analysisText string
	err          error
	calls        int
}

func (m *aiMock) GenerateCropPlan(context.Context, utils.PlanPromptInputs) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.planText, nil
}

func (m *aiMock) GenerateFollowUp(context.Context, string, string, string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.followUpText, nil
}

func (m *aiMock) AnalyzeDisease(context.Context, []byte, string, string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.analysisText, nil
}

func (m *aiMock) TestConnection(context.Context) error {
	m.calls++
	return m.err
}

func (m *aiMock) Configured() bool { return true }

func (m *aiMock) Close() error { return nil }

type ttsMock struct {
	url   string
	err   error
	calls int
}

func (m *ttsMock) Synthesize(context.Context, string, string) (string, error) {
	m.calls++
	return m.url, m.err
}

// storeMock writes real files under dir so services can read media back.
type storeMock struct {
	dir     string
	saved   []string
	removed []string
	saveErr error
}

func (m *storeMock) saveFixed(name string, kind string) (*utils.SavedFile, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, []byte("media-bytes"), 0o644); err != nil {
		return nil, err
	}
	m.saved = append(m.saved, path)
	return &utils.SavedFile{
		OriginalName: name,
		FileName:     name,
		Path:         path,
		URL:          "/uploads/" + name,
		MIME:         "image/png",
		Kind:         kind,
		Size:         11,
	}, nil
}

func (m *storeMock) SaveImage(fh *multipart.FileHeader) (*utils.SavedFile, error) {
	return m.saveFixed(fh.Filename, utils.MediaKindImage)
}

func (m *storeMock) SaveVideo(fh *multipart.FileHeader) (*utils.SavedFile, error) {
	return m.saveFixed(fh.Filename, utils.MediaKindVideo)
}

func (m *storeMock) SaveMedia(fh *multipart.FileHeader) (*utils.SavedFile, error) {
	if fh == nil {
		return nil, utils.ErrFileRequired
	}
	return m.saveFixed(fh.Filename, utils.MediaKindImage)
}

func (m *storeMock) SaveBytes(data []byte, ext string) (*utils.SavedFile, error) {
	return m.saveFixed("audio"+ext, "")
}

func (m *storeMock) Remove(path string) {
	m.removed = append(m.removed, path)
	os.Remove(path)
}
