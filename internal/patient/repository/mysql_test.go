package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/c14220110/clinic-backend/internal/patient/models"
	"github.com/c14220110/clinic-backend/internal/patient/services"
	"github.com/jmoiron/sqlx"
)

var patientCols = []string{"id", "name", "age", "gender", "contact", "address", "bp", "spo2", "temperature", "hr", "status", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*PatientRepository, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return NewPatientRepository(sqlx.NewDb(raw, "mysql")), mock
}

func patientRow(rows *sqlmock.Rows, id int64, name string, status models.Status, created time.Time) *sqlmock.Rows {
	return rows.AddRow(id, name, 34, "Female", "9876543210", "12 Park St", "120/80", "98", "98.6", "72", string(status), created, created)
}

func TestCreatePatient(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO patients`)).
		WithArgs("Asha", 34, "Female", "9876543210", "12 Park St", "120/80", "98", "98.6", "72", models.StatusQueued).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM patients WHERE id = ?`)).WithArgs(int64(5)).
		WillReturnRows(patientRow(sqlmock.NewRows(patientCols), 5, "Asha", models.StatusQueued, now))

	p := &models.Patient{
		Name: "Asha", Age: 34, Gender: "Female", Contact: "9876543210", Address: "12 Park St",
		Vitals: models.Vitals{BP: "120/80", SpO2: "98", Temperature: "98.6", HR: "72"},
		Status: models.StatusQueued,
	}
	if err := repo.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 5 || p.BP != "120/80" || p.CreatedAt.IsZero() {
		t.Errorf("unexpected patient %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestListQueued_Ordered(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(patientCols)
	patientRow(rows, 1, "First", models.StatusQueued, now.Add(-time.Minute))
	patientRow(rows, 2, "Second", models.StatusQueued, now)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = ? ORDER BY created_at, id`)).
		WithArgs(models.StatusQueued).
		WillReturnRows(rows)

	queued, err := repo.ListQueued(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queued) != 2 || queued[0].Name != "First" {
		t.Errorf("unexpected queue %+v", queued)
	}
}

func TestMarkConsulted(t *testing.T) {
	markSQL := regexp.QuoteMeta(`UPDATE patients SET status = ?`)
	getSQL := regexp.QuoteMeta(`FROM patients WHERE id = ?`)
	now := time.Now().UTC()

	t.Run("queued", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(markSQL).WithArgs(models.StatusConsulted, int64(1), models.StatusQueued).
			WillReturnResult(sqlmock.NewResult(0, 1))

		changed, err := repo.MarkConsulted(context.Background(), 1)
		if err != nil || !changed {
			t.Fatalf("expected changed, got %v %v", changed, err)
		}
	})

	t.Run("already consulted", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(markSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(getSQL).WithArgs(int64(1)).
			WillReturnRows(patientRow(sqlmock.NewRows(patientCols), 1, "Asha", models.StatusConsulted, now))

		changed, err := repo.MarkConsulted(context.Background(), 1)
		if err != nil || changed {
			t.Fatalf("expected no-op, got %v %v", changed, err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(markSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(getSQL).WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(patientCols))

		_, err := repo.MarkConsulted(context.Background(), 9)
		if !errors.Is(err, services.ErrPatientNotFound) {
			t.Fatalf("expected ErrPatientNotFound, got %v", err)
		}
	})
}

func TestUpdateVitals_Unknown(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE patients SET bp = ?`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM patients WHERE id = ?`)).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(patientCols))

	err := repo.UpdateVitals(context.Background(), 3, models.Vitals{BP: "110/70"})
	if !errors.Is(err, services.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}
