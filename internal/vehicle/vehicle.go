package vehicle

import "time"

type Vehicle struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	PlateNo   string    `json:"plateNo"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
