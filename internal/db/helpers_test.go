package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestNullIfEmpty(t *testing.T) {
	if got := NullIfEmpty(""); got != nil {
		t.Fatalf("empty string should become nil, got %v", got)
	}
	if got := NullIfEmpty("x"); got != "x" {
		t.Fatalf("non-empty string should pass through, got %v", got)
	}
}

func TestHasTable(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery("SELECT table_name").WithArgs("hotels").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("hotels"))
	mock.ExpectQuery("SELECT table_name").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	if !HasTable(conn, "hotels") {
		t.Fatalf("existing table reported missing")
	}
	if HasTable(conn, "missing") {
		t.Fatalf("missing table reported present")
	}
}

func TestEnsureSchemaSkipsExistingTables(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	for _, table := range []string{"hotels", "bookings", "agency_users"} {
		mock.ExpectQuery("SELECT table_name").WithArgs(table).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(table))
	}

	if err := EnsureSchema(conn); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	// no CREATE TABLE may run when everything exists
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaCreatesMissingTables(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery("SELECT table_name").WithArgs("hotels").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS hotels").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS agency_users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := EnsureSchema(conn); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
