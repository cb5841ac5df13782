package appointment

import (
	"context"
	"encoding/json"
	"fmt"
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
	created *model.Appointment
	listed  []*model.Appointment
	err     error
	calls   int
}

func (s *stubService) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubService) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listed, nil
}

type stubOutboxRepo struct {
	events []*model.OutboxEvent
}

func (s *stubOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
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

func sampleAppointment() *model.Appointment {
	snapshot := &model.PatientSnapshot{
		FirstName:  "Amara",
		LastName:   "Okafor",
		HospitalID: "HOSP12345678",
		Gender:     model.GenderFemale,
		Age:        "30yrs",
		IsNew:      true,
	}
	data, _ := json.Marshal(snapshot)
	return &model.Appointment{
		Base:            model.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		PatientID:       uuid.New(),
		Clinic:          "Neurology",
		Title:           "General consultation",
		ScheduledTime:   time.Now().Add(24 * time.Hour),
		AppointmentType: model.AppointmentTypeFollowUp,
		Status:          model.AppointmentStatusProcessing,
		Amount:          72000,
		Patient:         snapshot,
		PatientJSON:     string(data),
	}
}

func createBody(patientID uuid.UUID) string {
	return fmt.Sprintf(`{
		"patientId": %q,
		"clinic": "Neurology",
		"title": "General consultation",
		"scheduledTime": "2026-10-01T09:00:00Z",
		"appointmentType": "Follow-up",
		"doesNotRepeat": true
	}`, patientID)
}

func TestCreateAppointmentSuccess(t *testing.T) {
	svc := &stubService{created: sampleAppointment()}
	outbox := &stubOutboxRepo{}
	router := setupRouter(svc, outbox)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(createBody(uuid.New())))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Processing", got["status"])
	assert.Equal(t, float64(72000), got["amount"])
	assert.Contains(t, got, "patientId")
	assert.Contains(t, got, "scheduledTime")

	// The snapshot rides along under "patient"; the stored twin never
	// leaks into the payload.
	patient, ok := got["patient"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "HOSP12345678", patient["hospitalId"])
	assert.Equal(t, "30yrs", patient["age"])

	require.Len(t, outbox.events, 1)
	assert.Equal(t, "APPOINTMENT_CREATE", outbox.events[0].EventType)
}

func TestCreateAppointmentMalformedJSON(t *testing.T) {
	svc := &stubService{}
	router := setupRouter(svc, &stubOutboxRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader("[["))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestCreateAppointmentValidationFields(t *testing.T) {
	router := setupRouter(&stubService{}, &stubOutboxRepo{})

	body := `{
		"clinic": "Neurology",
		"scheduledTime": "2026-10-01T09:00:00Z",
		"appointmentType": "Walk-in"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Status string            `json:"status"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "is required", resp.Fields["patientID"])
	assert.Equal(t, "is required", resp.Fields["title"])
	assert.Equal(t, "must be one of: New Follow-up Emergency", resp.Fields["appointmentType"])
}

func TestCreateAppointmentUnknownPatient(t *testing.T) {
	svc := &stubService{err: apperrors.NotFound("patient", nil)}
	outbox := &stubOutboxRepo{}
	router := setupRouter(svc, outbox)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(createBody(uuid.New())))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, outbox.events, "no event for a rejected appointment")

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "patient not found", resp["message"])
}

func TestListAppointmentsBareArray(t *testing.T) {
	svc := &stubService{listed: []*model.Appointment{sampleAppointment(), sampleAppointment()}}
	router := setupRouter(svc, &stubOutboxRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	for _, a := range got {
		assert.Contains(t, a, "patient")
	}
}

func TestListAppointmentsServiceError(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("connection reset")}
	router := setupRouter(svc, &stubOutboxRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp["message"])
}
