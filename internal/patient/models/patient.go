package models

import "time"

type Status string

const (
	StatusQueued    Status = "queued"
	StatusConsulted Status = "consulted"
)

// Vitals are kept as entered, e.g. bp "120/80", temperature "98.6".
type Vitals struct {
	BP          string `json:"bp"          db:"bp"`
	SpO2        string `json:"spo2"        db:"spo2"`
	Temperature string `json:"temperature" db:"temperature"`
	HR          string `json:"hr"          db:"hr"`
}

// Overlay returns v with every non-empty field of o copied over it.
func (v Vitals) Overlay(o Vitals) Vitals {
	if o.BP != "" {
		v.BP = o.BP
	}
	if o.SpO2 != "" {
		v.SpO2 = o.SpO2
	}
	if o.Temperature != "" {
		v.Temperature = o.Temperature
	}
	if o.HR != "" {
		v.HR = o.HR
	}
	return v
}

type Patient struct {
	ID      int64  `json:"id"      db:"id"`
	Name    string `json:"name"    db:"name"`
	Age     int    `json:"age"     db:"age"`
	Gender  string `json:"gender"  db:"gender"`
	Contact string `json:"contact" db:"contact"`
	Address string `json:"address" db:"address"`
	Vitals
	Status    Status    `json:"status"     db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PatientRequest is the payload of POST /patients. A status in the payload
// is ignored; new patients always join the queue.
type PatientRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
	Address string `json:"address"`
	Vitals
}

// VitalsRequest amends only the fields that are present.
type VitalsRequest struct {
	BP          *string `json:"bp"`
	SpO2        *string `json:"spo2"`
	Temperature *string `json:"temperature"`
	HR          *string `json:"hr"`
}

// Apply copies the present fields onto v.
func (r VitalsRequest) Apply(v Vitals) Vitals {
	if r.BP != nil {
		v.BP = *r.BP
	}
	if r.SpO2 != nil {
		v.SpO2 = *r.SpO2
	}
	if r.Temperature != nil {
		v.Temperature = *r.Temperature
	}
	if r.HR != nil {
		v.HR = *r.HR
	}
	return v
}

func (r VitalsRequest) Empty() bool {
	return r.BP == nil && r.SpO2 == nil && r.Temperature == nil && r.HR == nil
}
