package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/medidesk/frontdesk-api/internal/model"
	"github.com/medidesk/frontdesk-api/internal/repository"
	apperrors "github.com/medidesk/frontdesk-api/pkg/errors"
	"github.com/medidesk/frontdesk-api/pkg/hospitalid"
)

// Patients never change once created, so cached reads cannot go stale
// within the TTL.
const (
	cacheTTL        = 5 * time.Minute
	cacheCleanup    = 10 * time.Minute
	maxIDGenRetries = 3
)

type Service interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	ListPatients(ctx context.Context) ([]*model.Patient, error)
	SearchPatients(ctx context.Context, query string) ([]*model.Patient, error)
}

type service struct {
	repo  repository.PatientRepository
	cache *cache.Cache
}

func NewService(repo repository.PatientRepository) Service {
	return &service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

func (s *service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Base:        model.Base{ID: uuid.New()},
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		Title:       req.Title,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		PhoneNumber: req.PhoneNumber,
		Picture:     req.Picture,
		IsNew:       req.IsNew,
	}

	// The generator is uniform over 8 digits, so collisions are rare;
	// the unique constraint catches them and we redraw.
	var err error
	for attempt := 0; attempt < maxIDGenRetries; attempt++ {
		patient.HospitalID = hospitalid.Generate()
		err = s.repo.Create(ctx, patient)
		if err == nil {
			s.cache.Set(patient.ID.String(), patient, cache.DefaultExpiration)
			return patient, nil
		}
		if !errors.Is(err, repository.ErrDuplicateHospitalID) {
			break
		}
	}
	return nil, fmt.Errorf("failed to create patient: %w", err)
}

func (s *service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	if cached, ok := s.cache.Get(id.String()); ok {
		return cached.(*model.Patient), nil
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	s.cache.Set(id.String(), patient, cache.DefaultExpiration)
	return patient, nil
}

func (s *service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *service) SearchPatients(ctx context.Context, query string) ([]*model.Patient, error) {
	patients, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}
