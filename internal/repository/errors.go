package repository

import "errors"

// ErrDuplicateHospitalID is returned when an insert hits the unique
// constraint on patients.hospital_id. The generator is probabilistic, so
// callers regenerate and retry.
var ErrDuplicateHospitalID = errors.New("duplicate hospital id")
