package user

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleClient   Role = "client"
	RoleDriver   Role = "driver"
	RoleCarwash  Role = "carwash"
	RoleAdmin    Role = "admin"
	RoleSubadmin Role = "subadmin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleDriver, RoleCarwash, RoleAdmin, RoleSubadmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %s", s)
	}
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch ApprovalStatus(s) {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return ApprovalStatus(s), nil
	default:
		return "", fmt.Errorf("unknown approval status: %s", s)
	}
}

// CanDecide reports whether an approval decision is legal. Decisions are only
// taken on pending accounts; approved/rejected are final.
func CanDecide(from, to ApprovalStatus) bool {
	if from != ApprovalPending {
		return false
	}
	return to == ApprovalApproved || to == ApprovalRejected
}

type User struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	NRC            string         `json:"nrc,omitempty"`
	Role           Role           `json:"role"`
	PasswordHash   string         `json:"-"`
	IsActive       bool           `json:"isActive"`
	IsSuspended    bool           `json:"isSuspended"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`

	// Driver-only attributes.
	LicenseNo     string     `json:"licenseNo,omitempty"`
	LicenseExpiry *time.Time `json:"licenseExpiry,omitempty"`

	// Carwash-only attributes.
	CarWashName string `json:"carWashName,omitempty"`
	Location    string `json:"location,omitempty"`
	Bays        int    `json:"bays,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) IsApproved() bool {
	return u.ApprovalStatus == ApprovalApproved
}

func HashPassword(plain string) (string, error) {
	if len(plain) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
