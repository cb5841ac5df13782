// Command seed wipes the patient and appointment stores and refills them
// with demo data for the dashboard.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medidesk/frontdesk-api/internal/config"
	"github.com/medidesk/frontdesk-api/internal/model"
	"github.com/medidesk/frontdesk-api/internal/repository/postgres"
	"github.com/medidesk/frontdesk-api/pkg/age"
	"github.com/medidesk/frontdesk-api/pkg/hospitalid"
	"github.com/medidesk/frontdesk-api/pkg/pricing"
)

const patientCount = 5

var (
	maleFirstNames   = []string{"James", "Daniel", "Samuel", "Victor", "Emeka", "Tunde", "Ibrahim", "Chidi"}
	femaleFirstNames = []string{"Amara", "Grace", "Ngozi", "Fatima", "Blessing", "Aisha", "Funke", "Chioma"}
	middleNames      = []string{"Olu", "Ade", "Chukwu", "Ama", "Ife", "Osa", "Nneka", "Kofi"}
	lastNames        = []string{"Okafor", "Adeyemi", "Balogun", "Eze", "Mohammed", "Okonkwo", "Adebayo", "Nwosu"}

	clinics = []string{"Neurology", "Cardiology", "General", "Dentistry", "Pediatrics"}
	types   = []model.AppointmentType{
		model.AppointmentTypeNew,
		model.AppointmentTypeFollowUp,
		model.AppointmentTypeEmergency,
	}
	statuses = []model.AppointmentStatus{
		model.AppointmentStatusProcessing,
		model.AppointmentStatusNotArrived,
		model.AppointmentStatusAwaitingVitals,
		model.AppointmentStatusAwaitingDoctor,
		model.AppointmentStatusAdmitted,
		model.AppointmentStatusTransferredAE,
		model.AppointmentStatusSeenDoctor,
	}
	visitTitles = []string{
		"General consultation",
		"Routine check up",
		"Lab results review",
		"Post surgery review",
		"Specialist referral",
	}
)

func pick[T any](items []T) T {
	return items[rand.Intn(len(items))]
}

func randomPatient() *model.Patient {
	gender := model.GenderMale
	title := "Mr"
	firstName := pick(maleFirstNames)
	if rand.Intn(2) == 0 {
		gender = model.GenderFemale
		title = "Mrs"
		firstName = pick(femaleFirstNames)
	}

	hospitalID := hospitalid.Generate()

	// Ages 0-80, scattered through the year.
	dob := time.Now().UTC().
		AddDate(-rand.Intn(81), 0, -rand.Intn(365))

	return &model.Patient{
		Base:        model.Base{ID: uuid.New()},
		FirstName:   firstName,
		MiddleName:  pick(middleNames),
		LastName:    pick(lastNames),
		Title:       title,
		Gender:      gender,
		DateOfBirth: dob,
		PhoneNumber: fmt.Sprintf("+234 80%08d", rand.Intn(100000000)),
		Picture:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", hospitalID),
		IsNew:       rand.Intn(2) == 0,
		HospitalID:  hospitalID,
	}
}

func randomAppointment(patient *model.Patient) (*model.Appointment, error) {
	clinic := pick(clinics)
	appointmentType := pick(types)

	snapshot := &model.PatientSnapshot{
		FirstName:  patient.FirstName,
		LastName:   patient.LastName,
		HospitalID: patient.HospitalID,
		Gender:     patient.Gender,
		Age:        age.Display(patient.DateOfBirth),
		IsNew:      patient.IsNew,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	return &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		PatientID:       patient.ID,
		Clinic:          clinic,
		Title:           pick(visitTitles),
		ScheduledTime:   time.Now().Add(time.Duration(1+rand.Intn(30*24)) * time.Hour),
		AppointmentType: appointmentType,
		DoesNotRepeat:   rand.Intn(2) == 0,
		Status:          pick(statuses),
		Amount:          pricing.Amount(clinic, string(appointmentType)),
		Patient:         snapshot,
		PatientJSON:     string(data),
	}, nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Appointments reference patients, so they go first.
	if err := appointmentRepo.DeleteAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to clear appointments")
	}
	if err := patientRepo.DeleteAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to clear patients")
	}
	log.Info().Msg("cleared existing data")

	var appointmentCount int
	for i := 0; i < patientCount; i++ {
		patient := randomPatient()
		if err := patientRepo.Create(ctx, patient); err != nil {
			log.Fatal().Err(err).Msg("failed to seed patient")
		}

		for j := 0; j < 1+rand.Intn(3); j++ {
			appointment, err := randomAppointment(patient)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to build appointment")
			}
			if err := appointmentRepo.Create(ctx, appointment); err != nil {
				log.Fatal().Err(err).Msg("failed to seed appointment")
			}
			appointmentCount++
		}
	}

	log.Info().
		Int("patients", patientCount).
		Int("appointments", appointmentCount).
		Msg("seeding complete")
}
