package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medidesk/frontdesk-api/internal/model"
)

type mockPatientRepo struct {
	patients map[uuid.UUID]*model.Patient
	getCalls int
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (m *mockPatientRepo) Create(ctx context.Context, p *model.Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	m.getCalls++
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("failed to get patient: %w", sql.ErrNoRows)
	}
	copied := *p
	return &copied, nil
}

func (m *mockPatientRepo) List(ctx context.Context) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(m.patients))
	for _, p := range m.patients {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPatientRepo) Search(ctx context.Context, q string) ([]*model.Patient, error) {
	return nil, nil
}

func (m *mockPatientRepo) Update(ctx context.Context, p *model.Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) DeleteAll(ctx context.Context) error {
	m.patients = make(map[uuid.UUID]*model.Patient)
	return nil
}

type mockAppointmentRepo struct {
	appointments []*model.Appointment
	createErr    error
}

func (m *mockAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	if m.createErr != nil {
		return m.createErr
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	stored := *a
	m.appointments = append(m.appointments, &stored)
	return nil
}

func (m *mockAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	for _, a := range m.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("failed to get appointment: %w", sql.ErrNoRows)
}

func (m *mockAppointmentRepo) List(ctx context.Context) ([]*model.Appointment, error) {
	out := make([]*model.Appointment, len(m.appointments))
	for i, a := range m.appointments {
		copied := *a
		copied.Patient = nil
		out[i] = &copied
	}
	return out, nil
}

func (m *mockAppointmentRepo) DeleteAll(ctx context.Context) error {
	m.appointments = nil
	return nil
}
