package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentType string

const (
	AppointmentTypeNew       AppointmentType = "New"
	AppointmentTypeFollowUp  AppointmentType = "Follow-up"
	AppointmentTypeEmergency AppointmentType = "Emergency"
)

type AppointmentStatus string

const (
	AppointmentStatusProcessing     AppointmentStatus = "Processing"
	AppointmentStatusNotArrived     AppointmentStatus = "Not arrived"
	AppointmentStatusAwaitingVitals AppointmentStatus = "Awaiting vitals"
	AppointmentStatusAwaitingDoctor AppointmentStatus = "Awaiting doctor"
	AppointmentStatusAdmitted       AppointmentStatus = "Admitted to ward"
	AppointmentStatusTransferredAE  AppointmentStatus = "Transferred to A&E"
	AppointmentStatusSeenDoctor     AppointmentStatus = "Seen doctor"
)

// PatientSnapshot is the patient's display fields as they were when the
// appointment was created. It is a copy, not a live reference; later edits
// to the patient must not show up here.
type PatientSnapshot struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	HospitalID string `json:"hospitalId"`
	Gender     Gender `json:"gender"`
	Age        string `json:"age"`
	IsNew      bool   `json:"isNew"`
}

type Appointment struct {
	Base
	PatientID       uuid.UUID         `db:"patient_id" json:"patientId"`
	Clinic          string            `db:"clinic" json:"clinic"`
	Title           string            `db:"title" json:"title"`
	ScheduledTime   time.Time         `db:"scheduled_time" json:"scheduledTime"`
	AppointmentType AppointmentType   `db:"appointment_type" json:"appointmentType"`
	DoesNotRepeat   bool              `db:"does_not_repeat" json:"doesNotRepeat"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Amount          int64             `db:"amount" json:"amount"`

	// Patient is the denormalized snapshot; PatientJSON is its stored twin,
	// marshalled by the service layer around repository calls.
	Patient     *PatientSnapshot `db:"-" json:"patient,omitempty"`
	PatientJSON string           `db:"patient_snapshot" json:"-"`
}

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID       `json:"patientId" binding:"required"`
	Clinic          string          `json:"clinic" binding:"required"`
	Title           string          `json:"title" binding:"required"`
	ScheduledTime   time.Time       `json:"scheduledTime" binding:"required"`
	AppointmentType AppointmentType `json:"appointmentType" binding:"required,oneof=New Follow-up Emergency"`
	DoesNotRepeat   bool            `json:"doesNotRepeat"`
}
