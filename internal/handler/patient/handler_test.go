package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medidesk/frontdesk-api/internal/model"
	apperrors "github.com/medidesk/frontdesk-api/pkg/errors"
)

type stubService struct {
	created    *model.Patient
	found      *model.Patient
	listed     []*model.Patient
	searched   []*model.Patient
	err        error
	lastQuery  string
	createReqs []*model.CreatePatientRequest
}

func (s *stubService) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	s.createReqs = append(s.createReqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubService) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.found, nil
}

func (s *stubService) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listed, nil
}

func (s *stubService) SearchPatients(ctx context.Context, query string) ([]*model.Patient, error) {
	s.lastQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.searched, nil
}

type stubOutboxRepo struct {
	events    []*model.OutboxEvent
	createErr error
}

func (s *stubOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.events = append(s.events, event)
	return nil
}

func (s *stubOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return nil, nil
}

func (s *stubOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error {
	return nil
}

func (s *stubOutboxRepo) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func setupRouter(svc *stubService, outbox *stubOutboxRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api")
	NewHandler(svc, outbox).RegisterRoutes(api)
	return engine
}

func samplePatient() *model.Patient {
	return &model.Patient{
		Base:        model.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		FirstName:   "Amara",
		LastName:    "Okafor",
		Gender:      model.GenderFemale,
		DateOfBirth: time.Date(1990, time.March, 12, 0, 0, 0, 0, time.UTC),
		IsNew:       true,
		HospitalID:  "HOSP12345678",
	}
}

func TestCreatePatientSuccess(t *testing.T) {
	svc := &stubService{created: samplePatient()}
	outbox := &stubOutboxRepo{}
	router := setupRouter(svc, outbox)

	body := `{
		"firstName": "Amara",
		"lastName": "Okafor",
		"gender": "Female",
		"dateOfBirth": "1990-03-12T00:00:00Z",
		"isNew": true
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	// Success bodies are the bare document, camelCase keys and no envelope.
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "HOSP12345678", got["hospitalId"])
	assert.Equal(t, "Amara", got["firstName"])
	assert.Contains(t, got, "_id")
	assert.NotContains(t, got, "status")

	require.Len(t, outbox.events, 1)
	assert.Equal(t, "PATIENT_CREATE", outbox.events[0].EventType)
}

func TestCreatePatientMalformedJSON(t *testing.T) {
	svc := &stubService{}
	router := setupRouter(svc, &stubOutboxRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.createReqs, "service must not be reached on a bind failure")
}

func TestCreatePatientValidationFields(t *testing.T) {
	router := setupRouter(&stubService{}, &stubOutboxRepo{})

	body := `{
		"firstName": "Amara",
		"gender": "Unknown",
		"dateOfBirth": "1990-03-12T00:00:00Z"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Status  string            `json:"status"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "is required", resp.Fields["lastName"])
	assert.Equal(t, "must be one of: Male Female Other", resp.Fields["gender"])
}

func TestCreatePatientOutboxFailureDoesNotFailRequest(t *testing.T) {
	svc := &stubService{created: samplePatient()}
	outbox := &stubOutboxRepo{createErr: assert.AnError}
	router := setupRouter(svc, outbox)

	body := `{
		"firstName": "Amara",
		"lastName": "Okafor",
		"gender": "Female",
		"dateOfBirth": "1990-03-12T00:00:00Z"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetPatientInvalidID(t *testing.T) {
	router := setupRouter(&stubService{}, &stubOutboxRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPatientNotFound(t *testing.T) {
	svc := &stubService{err: apperrors.NotFound("patient", nil)}
	router := setupRouter(svc, &stubOutboxRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "patient not found", resp["message"])
}

func TestListPatientsBareArray(t *testing.T) {
	svc := &stubService{listed: []*model.Patient{samplePatient(), samplePatient()}}
	router := setupRouter(svc, &stubOutboxRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestSearchPatientsMissingQuery(t *testing.T) {
	svc := &stubService{}
	router := setupRouter(svc, &stubOutboxRepo{})

	for _, target := range []string{"/api/patients/search", "/api/patients/search?q=%20%20"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	assert.Empty(t, svc.lastQuery)
}

func TestSearchPatientsPassesTrimmedQuery(t *testing.T) {
	svc := &stubService{searched: []*model.Patient{samplePatient()}}
	router := setupRouter(svc, &stubOutboxRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/search?q=%20Oka%20", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Oka", svc.lastQuery)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}
