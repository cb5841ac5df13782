package model

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Patient is a demographic record. Patients are immutable through the API
// once created; the hospital ID is the human-facing identifier and is
// generated server-side.
type Patient struct {
	Base
	FirstName   string    `db:"first_name" json:"firstName"`
	MiddleName  string    `db:"middle_name" json:"middleName,omitempty"`
	LastName    string    `db:"last_name" json:"lastName"`
	Title       string    `db:"title" json:"title,omitempty"`
	Gender      Gender    `db:"gender" json:"gender"`
	DateOfBirth time.Time `db:"date_of_birth" json:"dateOfBirth"`
	PhoneNumber string    `db:"phone_number" json:"phoneNumber,omitempty"`
	Picture     string    `db:"picture" json:"picture,omitempty"`
	IsNew       bool      `db:"is_new" json:"isNew"`
	HospitalID  string    `db:"hospital_id" json:"hospitalId"`
}

type CreatePatientRequest struct {
	FirstName   string    `json:"firstName" binding:"required"`
	MiddleName  string    `json:"middleName"`
	LastName    string    `json:"lastName" binding:"required"`
	Title       string    `json:"title"`
	Gender      Gender    `json:"gender" binding:"required,oneof=Male Female Other"`
	DateOfBirth time.Time `json:"dateOfBirth" binding:"required"`
	PhoneNumber string    `json:"phoneNumber"`
	Picture     string    `json:"picture"`
	IsNew       bool      `json:"isNew"`
}
