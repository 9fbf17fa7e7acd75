package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the bookings table when it does not exist.
//
// active_key is a generated column that holds "date#slot" for active rows
// and NULL otherwise.  The unique index over it is what makes the
// one-active-booking-per-slot invariant hold under concurrent commits:
// MySQL permits any number of NULLs in a unique index, so cancelled and
// completed bookings never block a slot, while a second active row for
// the same (date, slot) fails with a duplicate-key error.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS bookings (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		holder_id   BIGINT NOT NULL,
		username    VARCHAR(255) NULL,
		first_name  VARCHAR(255) NULL,
		last_name   VARCHAR(255) NULL,
		date        CHAR(10) NOT NULL,
		slot        TINYINT UNSIGNED NOT NULL,
		party_size  VARCHAR(8) NOT NULL,
		language    VARCHAR(8) NOT NULL DEFAULT 'am',
		status      ENUM('active','cancelled','completed') NOT NULL DEFAULT 'active',
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		active_key  CHAR(13) GENERATED ALWAYS AS (
			IF(status = 'active', CONCAT(date, '#', LPAD(slot, 2, '0')), NULL)
		) STORED,
		UNIQUE KEY uniq_active_slot (active_key),
		KEY idx_holder_date (holder_id, status, date),
		KEY idx_date_status (date, status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}
