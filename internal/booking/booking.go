package booking

import "time"

type Booking struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"clientId"`
	CarWashID      string    `json:"carWashId"`
	VehicleID      string    `json:"vehicleId"`
	ServiceID      string    `json:"serviceId"`
	DriverID       *string   `json:"driverId"`
	Status         Status    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	TotalAmount    string    `json:"totalAmount"`
	PickupLocation string    `json:"pickupLocation"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Assigned reports whether a driver has been attached yet.
func (b *Booking) Assigned() bool {
	return b.DriverID != nil && *b.DriverID != ""
}
