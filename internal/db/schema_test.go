package db

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRequireTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("public_orders").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("public_orders"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("reservations").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("payment_sessions").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("payment_sessions"))

	err = RequireTables(context.Background(), db, CheckoutTables...)
	if err == nil || !strings.Contains(err.Error(), "reservations") || strings.Contains(err.Error(), "public_orders") {
		t.Fatalf("unexpected result: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
