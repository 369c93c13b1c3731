package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cropgenesis/internal/models/db_models"
	"cropgenesis/internal/models/request_models"
	"cropgenesis/internal/models/response_models"
)

type cropPlanServiceStub struct {
	generateCalls int
	generated     *request_models.CropPlanRequest
}

func (s *cropPlanServiceStub) Generate(_ context.Context, _ uuid.UUID, request request_models.CropPlanRequest, _, _ *multipart.FileHeader) (*response_models.CropPlanResult, error) {
	s.generateCalls++
	s.generated = &request
	return &response_models.CropPlanResult{}, nil
}

func (s *cropPlanServiceStub) FollowUp(context.Context, uuid.UUID, request_models.PlanFollowUpRequest) (*response_models.FollowUpResult, error) {
	return &response_models.FollowUpResult{}, nil
}

func (s *cropPlanServiceStub) GetByID(context.Context, uuid.UUID, uuid.UUID) (*db_models.CropPlan, error) {
	return &db_models.CropPlan{}, nil
}

func (s *cropPlanServiceStub) List(context.Context, uuid.UUID, request_models.PaginationQuery) (*response_models.PagedCropPlans, error) {
	return &response_models.PagedCropPlans{}, nil
}

func (s *cropPlanServiceStub) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (s *cropPlanServiceStub) Stats(context.Context, uuid.UUID) (*response_models.PlanStats, error) {
	return &response_models.PlanStats{}, nil
}

func (s *cropPlanServiceStub) Status(context.Context) *response_models.AIServiceStatus {
	return &response_models.AIServiceStatus{}
}

func generateRouter(stub *cropPlanServiceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
	})
	controller := NewCropPlanController(stub)
	r.POST("/api/cropplan/generate", controller.Generate)
	return r
}

func generateForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func TestGenerateRejectsOutOfRangeLandSize(t *testing.T) {
	stub := &cropPlanServiceStub{}
	router := generateRouter(stub)

	body, contentType := generateForm(t, map[string]string{
		"soilType":   "loamy",
		"landSize":   "2000",
		"irrigation": "drip",
		"season":     "kharif",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/cropplan/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	if stub.generateCalls != 0 {
		t.Errorf("generate called %d times, validation must run first", stub.generateCalls)
	}

	var resp struct {
		Status string `json:"status"`
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, fe := range resp.Errors {
		if fe.Field == "landSize" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a field error for landSize, got %+v", resp.Errors)
	}
}

func TestGeneratePassesValidRequestThrough(t *testing.T) {
	stub := &cropPlanServiceStub{}
	router := generateRouter(stub)

	body, contentType := generateForm(t, map[string]string{
		"soilType":   "loamy",
		"landSize":   "5.5",
		"irrigation": "drip",
		"season":     "kharif",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/cropplan/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	if stub.generated == nil || stub.generated.LandSize != 5.5 {
		t.Fatalf("service did not receive the request: %+v", stub.generated)
	}
}
