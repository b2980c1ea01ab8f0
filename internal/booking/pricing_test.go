package booking

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeTotal_RoundsToCurrencyScale(t *testing.T) {
	got, err := ComputeTotal(decimal.RequireFromString("99.999"), decimal.RequireFromString("0.006"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "100.01" {
		t.Fatalf("expected 100.01, got %s", got)
	}
}

func TestComputeTotal_RejectsNonPositivePrice(t *testing.T) {
	if _, err := ComputeTotal(decimal.Zero, decimal.Zero); err == nil {
		t.Fatalf("expected error for zero price")
	}
	if _, err := ComputeTotal(decimal.RequireFromString("-5"), decimal.Zero); err == nil {
		t.Fatalf("expected error for negative price")
	}
}

func TestComputeTotal_RejectsNegativeFee(t *testing.T) {
	if _, err := ComputeTotal(decimal.RequireFromString("50"), decimal.RequireFromString("-1")); err == nil {
		t.Fatalf("expected error for negative fee")
	}
}
