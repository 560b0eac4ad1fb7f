package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibility(t *testing.T) {
	tests := []struct {
		name      string
		order     Order
		canPay    bool
		canCancel bool
	}{
		{"pending, no delivery", Order{Status: StatusPending}, true, true},
		{"pending, delivery sent", Order{Status: StatusPending, DeliveryRequestSent: true}, true, false},
		{"confirmed", Order{Status: StatusConfirmed}, false, true},
		{"confirmed, delivery sent", Order{Status: StatusConfirmed, DeliveryRequestSent: true}, false, false},
		{"paid", Order{Status: StatusPaid}, false, false},
		{"shipped", Order{Status: StatusShipped}, false, false},
		{"delivered", Order{Status: StatusDelivered}, false, false},
		{"cancelled", Order{Status: StatusCancelled}, false, false},
		{"lower case pending", Order{Status: "pending"}, true, true},
		{"unknown", Order{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canPay, CanPay(tt.order))
			assert.Equal(t, tt.canCancel, CanCancel(tt.order))
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "PAID", Status("paid").Label())
	assert.Equal(t, "UNKNOWN", Status("").Label())
	assert.True(t, Status(" Shipped ").Is(StatusShipped))
}

func TestOrderTotal(t *testing.T) {
	o := Order{Price: decimal.RequireFromString("19.5"), Quantity: 3}
	assert.Equal(t, "58.5", o.Total().String())

	o.Quantity = 0
	assert.Equal(t, "19.5", o.Total().String())

	assert.True(t, Order{}.Total().IsZero())
}

func TestOrderDecode(t *testing.T) {
	raw := `{
		"id": 12,
		"userId": 4,
		"itemId": 3,
		"quantity": 2,
		"price": 10.25,
		"status": "PENDING",
		"createdAt": "2025-03-04T10:15:30.123456",
		"deliveryRequestSent": false
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(raw), &o))

	assert.Equal(t, 12, o.ID)
	assert.Equal(t, 3, o.ItemID)
	assert.Equal(t, 2, o.Quantity)
	assert.Equal(t, "10.25", o.Price.String())
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, time.Date(2025, 3, 4, 10, 15, 30, 123456000, time.Local), o.CreatedAt.Time)
}

func TestTimestampDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339", `"2025-03-04T10:15:30Z"`, time.Date(2025, 3, 4, 10, 15, 30, 0, time.UTC)},
		{"local", `"2025-03-04T10:15:30"`, time.Date(2025, 3, 4, 10, 15, 30, 0, time.Local)},
		{"minutes only", `"2025-03-04T10:15"`, time.Date(2025, 3, 4, 10, 15, 0, 0, time.Local)},
		{"array", `[2025,3,4,10,15,30,500]`, time.Date(2025, 3, 4, 10, 15, 30, 500, time.Local)},
		{"short array", `[2025,3,4]`, time.Date(2025, 3, 4, 0, 0, 0, 0, time.Local)},
		{"null", `null`, time.Time{}},
		{"empty string", `""`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
		assert.Error(t, json.Unmarshal([]byte(`[2025]`), &ts))
	})

	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(Timestamp{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})
}

func TestSortNewestFirst(t *testing.T) {
	at := func(day int) Timestamp {
		return Timestamp{time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)}
	}
	orders := []Order{
		{ID: 1, CreatedAt: at(1)},
		{ID: 2},
		{ID: 3, CreatedAt: at(3)},
		{ID: 4, CreatedAt: at(2)},
		{ID: 5},
	}

	SortNewestFirst(orders)

	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int{3, 4, 1, 2, 5}, ids)
}
