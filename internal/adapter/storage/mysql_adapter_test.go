package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/storekit/checkout/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/checkout?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	ensureSchema(t, db)
	return db
}

func ensureSchema(t *testing.T, db *sql.DB) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS checkout_attempts (
			id VARCHAR(64) PRIMARY KEY,
			checkout_id VARCHAR(64) NOT NULL DEFAULT '',
			path VARCHAR(16) NOT NULL,
			status VARCHAR(16) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}
}

func TestCreateAndFinishAttempt(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	now := time.Now().UTC().Truncate(time.Second)
	attempt := domain.Attempt{
		ID:        uuid.NewString(),
		Path:      domain.PathWallet,
		Status:    domain.CompletionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := adapter.CreateAttempt(ctx, attempt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := adapter.FinishAttempt(ctx, attempt.ID, "chk-55", domain.CompletionSuccess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := adapter.GetAttempt(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected attempt, got nil")
	}
	if got.CheckoutID != "chk-55" {
		t.Errorf("expected checkout_id chk-55, got %s", got.CheckoutID)
	}
	if got.Status != domain.CompletionSuccess {
		t.Errorf("expected status success, got %s", got.Status)
	}
}

func TestFinishAttempt_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	err := NewMySQLAdapter(db).FinishAttempt(context.Background(), uuid.NewString(), "", domain.CompletionFailure)
	if err != ErrAttemptNotFound {
		t.Errorf("expected ErrAttemptNotFound, got %v", err)
	}
}
