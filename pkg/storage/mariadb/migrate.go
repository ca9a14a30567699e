package mariadb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS stock_items (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		quantity   INT NOT NULL DEFAULT 0,
		created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		INDEX idx_stock_items_quantity (quantity)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS sales (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		batch_id      CHAR(36) NOT NULL,
		medicine_id   BIGINT NOT NULL,
		medicine_name VARCHAR(255) NOT NULL,
		quantity      INT NOT NULL,
		sold_at       DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		INDEX idx_sales_batch (batch_id),
		INDEX idx_sales_medicine (medicine_id),
		CONSTRAINT fk_sales_stock FOREIGN KEY (medicine_id) REFERENCES stock_items(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS patients (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		age         INT NOT NULL DEFAULT 0,
		gender      VARCHAR(16) NOT NULL,
		contact     VARCHAR(32) NOT NULL,
		address     VARCHAR(512) NOT NULL DEFAULT '',
		bp          VARCHAR(16) NOT NULL DEFAULT '',
		spo2        VARCHAR(16) NOT NULL DEFAULT '',
		temperature VARCHAR(16) NOT NULL DEFAULT '',
		hr          VARCHAR(16) NOT NULL DEFAULT '',
		status      VARCHAR(16) NOT NULL DEFAULT 'queued',
		created_at  DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		updated_at  DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		INDEX idx_patients_status_created (status, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS records (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		patient_id    BIGINT NOT NULL,
		date          DATETIME(3) NOT NULL,
		registration  JSON NOT NULL,
		consultation  JSON NOT NULL,
		pdf_file_name VARCHAR(255) NOT NULL DEFAULT '',
		created_at    DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		INDEX idx_records_patient_date (patient_id, date),
		CONSTRAINT fk_records_patient FOREIGN KEY (patient_id) REFERENCES patients(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the tables used by the API.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
