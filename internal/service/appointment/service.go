package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medidesk/frontdesk-api/internal/model"
	"github.com/medidesk/frontdesk-api/internal/repository"
	"github.com/medidesk/frontdesk-api/pkg/age"
	apperrors "github.com/medidesk/frontdesk-api/pkg/errors"
	"github.com/medidesk/frontdesk-api/pkg/pricing"
)

type Service interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	ListAppointments(ctx context.Context) ([]*model.Appointment, error)
}

type service struct {
	repo     repository.AppointmentRepository
	patients repository.PatientRepository
}

func NewService(repo repository.AppointmentRepository, patients repository.PatientRepository) Service {
	return &service{
		repo:     repo,
		patients: patients,
	}
}

// CreateAppointment resolves the referenced patient, prices the visit and
// freezes the patient's display fields into the document before it is
// written. An unresolved patient id aborts the call with nothing persisted.
func (s *service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}

	appointment := &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		PatientID:       patient.ID,
		Clinic:          req.Clinic,
		Title:           req.Title,
		ScheduledTime:   req.ScheduledTime,
		AppointmentType: req.AppointmentType,
		DoesNotRepeat:   req.DoesNotRepeat,
		Status:          model.AppointmentStatusProcessing,
		Amount:          pricing.Amount(req.Clinic, string(req.AppointmentType)),
		Patient: &model.PatientSnapshot{
			FirstName:  patient.FirstName,
			LastName:   patient.LastName,
			HospitalID: patient.HospitalID,
			Gender:     patient.Gender,
			Age:        age.Display(patient.DateOfBirth),
			IsNew:      patient.IsNew,
		},
	}

	if err := marshalSnapshot(appointment); err != nil {
		return nil, fmt.Errorf("failed to marshal patient snapshot: %w", err)
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	return appointment, nil
}

func (s *service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	for _, appointment := range appointments {
		if err := unmarshalSnapshot(appointment); err != nil {
			return nil, fmt.Errorf("failed to unmarshal appointment %s: %w", appointment.ID, err)
		}
	}

	return appointments, nil
}

func marshalSnapshot(appointment *model.Appointment) error {
	if appointment.Patient == nil {
		return nil
	}
	data, err := json.Marshal(appointment.Patient)
	if err != nil {
		return err
	}
	appointment.PatientJSON = string(data)
	return nil
}

func unmarshalSnapshot(appointment *model.Appointment) error {
	if appointment.PatientJSON == "" {
		return nil
	}
	var snapshot model.PatientSnapshot
	if err := json.Unmarshal([]byte(appointment.PatientJSON), &snapshot); err != nil {
		return err
	}
	appointment.Patient = &snapshot
	return nil
}
