package payment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

// A concurrent settlement insert surfaces as a unique violation on the
// booking_id index; it must map to the PAYMENT_EXISTS conflict, nothing else.
func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "payments_booking_id_key"}
	if !isUniqueViolation(unique) {
		t.Fatalf("unique violation not detected")
	}
	if !isUniqueViolation(fmt.Errorf("create payment: %w", unique)) {
		t.Fatalf("wrapped unique violation not detected")
	}

	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation must not match")
	}
	if isUniqueViolation(errors.New("connection reset")) {
		t.Fatalf("plain error must not match")
	}
	if isUniqueViolation(nil) {
		t.Fatalf("nil must not match")
	}
}
