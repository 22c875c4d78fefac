package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), gormConfig())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestAutoMigrateCreatesEveryTable(t *testing.T) {
	client := NewFromGorm(newTestDB(t))
	if err := client.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	for _, table := range []string{"companies", "users", "appointments", "ppe_stock", "ppe_issues", "she_voters", "library_files"} {
		if !client.DB().Migrator().HasTable(table) {
			t.Fatalf("expected table %s", table)
		}
	}
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	client := NewFromGorm(newTestDB(t))
	if err := client.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models.Company{Name: "committed", UserLimit: 5}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Company{Name: "rolled", UserLimit: 5}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}

	var count int64
	if err := client.DB().Model(&models.Company{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestWithTx_RollsBackOnPostgres(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE ppe_stock").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	client := NewFromGorm(conn)
	err = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE ppe_stock SET quantity = 0").Error; err != nil {
			return err
		}
		return errors.New("second write failed")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	client := NewFromGorm(newTestDB(t))
	if err := client.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
			tx.Create(&models.Company{Name: "panicky", UserLimit: 1})
			panic("boom")
		})
	}()

	var count int64
	client.DB().Model(&models.Company{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows after panic, got %d", count)
	}
}

func TestPing(t *testing.T) {
	client := NewFromGorm(newTestDB(t))
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})) {
		t.Fatalf("expected pg unique violation")
	}
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email")) {
		t.Fatalf("expected sqlite unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not a unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Fatalf("nil is not a violation")
	}
	if !IsNotFound(fmt.Errorf("wrap: %w", gorm.ErrRecordNotFound)) {
		t.Fatalf("expected not found")
	}
}
