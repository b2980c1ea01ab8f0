package payment

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusFailed, StatusRefunded:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown payment status: %s", s)
	}
}

type Method string

const (
	MethodCash         Method = "cash"
	MethodCard         Method = "card"
	MethodMobileMoney  Method = "mobile_money"
	MethodBankTransfer Method = "bank_transfer"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCash, MethodCard, MethodMobileMoney, MethodBankTransfer:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown payment method: %s", s)
	}
}

// CanTransition guards the settlement lifecycle: a pending payment settles
// or fails, a failed payment may be retried, and only a paid payment can be
// refunded.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusPaid || to == StatusFailed
	case StatusFailed:
		return to == StatusPending || to == StatusPaid
	case StatusPaid:
		return to == StatusRefunded
	default:
		return false
	}
}

type Payment struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"bookingId"`
	Amount        string    `json:"amount"`
	Method        Method    `json:"method"`
	Status        Status    `json:"status"`
	TransactionID string    `json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
