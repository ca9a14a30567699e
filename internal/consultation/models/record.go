package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	patientmodels "github.com/c14220110/clinic-backend/internal/patient/models"
)

// Registration is the patient's details as they were at consultation time.
type Registration struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// Consultation holds the vitals and the doctor's notes of one visit.
type Consultation struct {
	BP                   string `json:"bp"`
	SpO2                 string `json:"spo2"`
	Temperature          string `json:"temperature"`
	HR                   string `json:"hr"`
	ChiefComplaints      string `json:"chief_complaints"`
	MedicalHistory       string `json:"medical_history"`
	Allergies            string `json:"allergies"`
	Examination          string `json:"examination"`
	ProvisionalDiagnosis string `json:"provisional_diagnosis"`
	Treatment            string `json:"treatment"`
	FollowupDate         string `json:"followup_date"`
}

// Vitals returns the vitals recorded during the consultation.
func (c Consultation) Vitals() patientmodels.Vitals {
	return patientmodels.Vitals{BP: c.BP, SpO2: c.SpO2, Temperature: c.Temperature, HR: c.HR}
}

// Record is an immutable snapshot of one visit.
type Record struct {
	ID           int64        `json:"id"            db:"id"`
	PatientID    int64        `json:"patient_id"    db:"patient_id"`
	Date         time.Time    `json:"date"          db:"date"`
	Registration Registration `json:"registration"  db:"registration"`
	Consultation Consultation `json:"consultation"  db:"consultation"`
	PDFFileName  string       `json:"pdf_file_name" db:"pdf_file_name"`
	CreatedAt    time.Time    `json:"created_at"    db:"created_at"`
}

// RecordRequest is the payload of POST /records.
type RecordRequest struct {
	PatientID    int64        `json:"patient_id"`
	Date         *time.Time   `json:"date"`
	Registration Registration `json:"registration"`
	Consultation Consultation `json:"consultation"`
	PDFFileName  string       `json:"pdf_file_name"`
}

// ConsultationRequest is the payload of POST /consultations. The
// registration snapshot is taken from the stored patient.
type ConsultationRequest struct {
	PatientID    int64        `json:"patient_id"`
	Consultation Consultation `json:"consultation"`
}

// Snapshots are stored as JSON columns.

func (r Registration) Value() (driver.Value, error) { return json.Marshal(r) }

func (r *Registration) Scan(src interface{}) error { return scanJSON(src, r) }

func (c Consultation) Value() (driver.Value, error) { return json.Marshal(c) }

func (c *Consultation) Scan(src interface{}) error { return scanJSON(src, c) }

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}
}
