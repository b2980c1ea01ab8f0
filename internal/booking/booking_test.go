package booking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBooking_JSONRoundTrip(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	driverID := "d1f2a3b4-0000-0000-0000-000000000001"

	cases := map[string]Booking{
		"unassigned": {
			ID:             "b-1",
			ClientID:       "c-1",
			CarWashID:      "w-1",
			VehicleID:      "v-1",
			ServiceID:      "s-1",
			DriverID:       nil,
			Status:         StatusPending,
			PaymentStatus:  "pending",
			TotalAmount:    "250.00",
			PickupLocation: "Plot 5, Great East Road",
			CreatedAt:      created,
			UpdatedAt:      created,
		},
		"assigned": {
			ID:             "b-2",
			ClientID:       "c-1",
			CarWashID:      "w-1",
			VehicleID:      "v-1",
			ServiceID:      "s-1",
			DriverID:       &driverID,
			Status:         StatusPickedUp,
			PaymentStatus:  "paid",
			TotalAmount:    "80.00",
			PickupLocation: "Plot 5, Great East Road",
			Notes:          "gate code 4421",
			CreatedAt:      created,
			UpdatedAt:      created.Add(time.Hour),
		},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := json.Marshal(in)
			require.NoError(t, err)

			var out Booking
			require.NoError(t, json.Unmarshal(b, &out))
			require.Equal(t, in, out)
		})
	}
}

func TestBooking_DriverIDNullOnWire(t *testing.T) {
	b, err := json.Marshal(Booking{ID: "b-1", Status: StatusPending})
	require.NoError(t, err)
	require.Contains(t, string(b), `"driverId":null`)
}
