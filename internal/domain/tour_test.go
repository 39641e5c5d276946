package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTour_OwnerID_NestedUserWins(t *testing.T) {
	raw := `{"tour_id":1,"title":"Spice Tour","user":{"user_id":42},"userId":7}`

	var tour Tour
	require.NoError(t, json.Unmarshal([]byte(raw), &tour))

	assert.Equal(t, int64(42), tour.OwnerID())
}

func TestTour_OwnerID_FallbackOrder(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int64
	}{
		{"camel userId", `{"tour_id":1,"userId":7}`, 7},
		{"snake user_id", `{"tour_id":1,"user_id":8}`, 8},
		{"guide_id", `{"tour_id":1,"guide_id":9}`, 9},
		{"camel beats snake", `{"tour_id":1,"userId":7,"user_id":8}`, 7},
		{"nothing", `{"tour_id":1}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var tour Tour
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &tour))
			assert.Equal(t, tc.want, tour.OwnerID())
		})
	}
}

func TestTour_TitleFallsBackToName(t *testing.T) {
	var tour Tour
	require.NoError(t, json.Unmarshal([]byte(`{"tour_id":3,"name":"Stone Town Walk"}`), &tour))
	assert.Equal(t, "Stone Town Walk", tour.Title)
}

func TestTour_PriceAcceptsStringAndNumber(t *testing.T) {
	var a, b Tour
	require.NoError(t, json.Unmarshal([]byte(`{"tour_id":1,"price":50}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"tour_id":2,"price":"80.5"}`), &b))

	assert.Equal(t, 50.0, a.Price)
	assert.Equal(t, 80.5, b.Price)
}

func TestTour_ImageRefFallbackOrder(t *testing.T) {
	var tour Tour
	require.NoError(t, json.Unmarshal([]byte(`{"tour_id":1,"image_url":"uploads/a.jpg","image":"b.jpg"}`), &tour))
	assert.Equal(t, "uploads/a.jpg", tour.ImageRef())
}

func TestBookingStatusForTour_Total(t *testing.T) {
	for _, s := range TourStatuses {
		mapped, ok := BookingStatusForTour(s)
		assert.True(t, ok, "no mapping for %s", s)
		assert.True(t, mapped.Valid())
	}

	_, ok := BookingStatusForTour(TourStatus("Bogus"))
	assert.False(t, ok)
}
