package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusPreparing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusConfirmed, StatusPreparing, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPreparing, StatusReady, true},
		{StatusPreparing, StatusCancelled, false},
		{StatusPreparing, StatusPending, false},
		{StatusReady, StatusDelivered, true},
		{StatusReady, StatusCancelled, false},
		{StatusDelivered, StatusCompleted, true},
		{StatusDelivered, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
		{"", StatusPending, false},
		{StatusPending, "", false},
	}
	for _, tt := range tests {
		got := ValidStatusTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("ValidStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanCancel(t *testing.T) {
	assert.True(t, StatusPending.CanCancel())
	assert.True(t, StatusConfirmed.CanCancel())
	assert.False(t, StatusPreparing.CanCancel())
	assert.False(t, StatusReady.CanCancel())
	assert.False(t, StatusDelivered.CanCancel())
	assert.False(t, StatusCompleted.CanCancel())
	assert.False(t, StatusCancelled.CanCancel())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, OrderStatus("bogus").IsTerminal())
}

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{
		{Name: "Tsuivan", Price: 15000, Quantity: 2},
		{Name: "Suutei Tsai", Price: 3000, Quantity: 3},
	}
	assert.Equal(t, 39000.0, OrderTotal(items))
	assert.Equal(t, 0.0, OrderTotal(nil))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	reviews := []Review{{Rating: 5}, {Rating: 4}, {Rating: 3}}
	assert.Equal(t, 4.0, AverageRating(reviews))
}

func TestIsValidImage(t *testing.T) {
	assert.True(t, IsValidImage("https://example.com/tsuivan.jpg"))
	assert.True(t, IsValidImage("data:image/png;base64,iVBOR"))
	assert.True(t, IsValidImage("/static/khuushuur.png"))
	assert.False(t, IsValidImage("ftp://example.com/file.png"))
	assert.False(t, IsValidImage(""))
}
