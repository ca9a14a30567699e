package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/c14220110/clinic-backend/internal/patient/models"
)

const maxAge = 150

var contactPattern = regexp.MustCompile(`^\d{10}$`)

var genders = []string{"Male", "Female", "Other"}

// CanonicalGender matches g case-insensitively against the accepted values.
func CanonicalGender(g string) (string, bool) {
	g = strings.TrimSpace(g)
	for _, want := range genders {
		if strings.EqualFold(g, want) {
			return want, true
		}
	}
	return "", false
}

// ValidateBP accepts "systolic/diastolic" with both parts numeric.
func ValidateBP(bp string) error {
	parts := strings.Split(strings.TrimSpace(bp), "/")
	if len(parts) != 2 {
		return fmt.Errorf("%w: bp must be systolic/diastolic", ErrInvalidPatient)
	}
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: bp must be systolic/diastolic", ErrInvalidPatient)
		}
	}
	return nil
}

// ValidateVitals checks the fields of v that carry a value.
func ValidateVitals(v models.Vitals) error {
	if v.BP != "" {
		return ValidateBP(v.BP)
	}
	return nil
}

// NormalizeVitals trims every field and drops the spaces inside bp, so
// " 120 / 80" is stored as "120/80".
func NormalizeVitals(v models.Vitals) models.Vitals {
	return models.Vitals{
		BP:          strings.ReplaceAll(strings.TrimSpace(v.BP), " ", ""),
		SpO2:        strings.TrimSpace(v.SpO2),
		Temperature: strings.TrimSpace(v.Temperature),
		HR:          strings.TrimSpace(v.HR),
	}
}

// normalizeRegistration validates req and returns the patient to insert.
func normalizeRegistration(req models.PatientRequest) (*models.Patient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPatient)
	}
	if req.Age < 0 || req.Age > maxAge {
		return nil, fmt.Errorf("%w: age must be between 0 and %d", ErrInvalidPatient, maxAge)
	}
	contact := strings.TrimSpace(req.Contact)
	if !contactPattern.MatchString(contact) {
		return nil, fmt.Errorf("%w: contact number must be exactly 10 digits", ErrInvalidPatient)
	}
	gender, ok := CanonicalGender(req.Gender)
	if !ok {
		return nil, fmt.Errorf("%w: gender must be Male, Female or Other", ErrInvalidPatient)
	}
	if strings.TrimSpace(req.BP) == "" {
		return nil, fmt.Errorf("%w: both systolic and diastolic bp are required", ErrInvalidPatient)
	}
	if err := ValidateBP(req.BP); err != nil {
		return nil, err
	}

	vitals := NormalizeVitals(req.Vitals)
	return &models.Patient{
		Name:    name,
		Age:     req.Age,
		Gender:  gender,
		Contact: contact,
		Address: strings.TrimSpace(req.Address),
		Vitals:  vitals,
		Status:  models.StatusQueued,
	}, nil
}
