package tickets

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketTypeRequest_ValidTypes(t *testing.T) {
	for _, tt := range []TicketType{Adult, Child, Infant} {
		r, err := NewTicketTypeRequest(tt, 3)
		require.NoError(t, err, tt.String())
		assert.Equal(t, tt, r.TicketType())
		assert.Equal(t, 3, r.NoOfTickets())
	}
}

func TestNewTicketTypeRequest_InvalidType(t *testing.T) {
	_, err := NewTicketTypeRequest(TicketType(0), 3)
	assert.True(t, errors.Is(err, ErrInvalidCategory))

	_, err = NewTicketTypeRequest(TicketType(42), 3)
	assert.True(t, errors.Is(err, ErrInvalidCategory))
}

func TestNewTicketTypeRequest_InvalidQuantity(t *testing.T) {
	for _, n := range []int{0, -1, -20} {
		_, err := NewTicketTypeRequest(Adult, n)
		assert.True(t, errors.Is(err, ErrInvalidQuantity), "quantity %d", n)
	}
}

func TestParseTicketType(t *testing.T) {
	tt, err := ParseTicketType("INFANT")
	require.NoError(t, err)
	assert.Equal(t, Infant, tt)
	assert.Equal(t, "INFANT", tt.String())

	for _, name := range []string{"ERROR", "adult", "", " ADULT"} {
		_, err := ParseTicketType(name)
		assert.True(t, errors.Is(err, ErrInvalidCategory), "name %q", name)
	}
}

func TestParseTicketTypeRequest_Quantities(t *testing.T) {
	tests := []struct {
		name     string
		quantity interface{}
		want     int
		reason   Reason
	}{
		{name: "int", quantity: 3, want: 3},
		{name: "int64", quantity: int64(4), want: 4},
		{name: "uint8", quantity: uint8(5), want: 5},
		{name: "whole float", quantity: float64(2), want: 2},
		{name: "json number", quantity: json.Number("7"), want: 7},
		{name: "numeric string", quantity: "12", want: 12},
		{name: "fractional float", quantity: 1.5, reason: ReasonInvalidQuantity},
		{name: "fractional json number", quantity: json.Number("1.5"), reason: ReasonInvalidQuantity},
		{name: "word", quantity: "Qty", reason: ReasonInvalidQuantity},
		{name: "nil", quantity: nil, reason: ReasonInvalidQuantity},
		{name: "bool", quantity: true, reason: ReasonInvalidQuantity},
		{name: "zero", quantity: 0, reason: ReasonInvalidQuantity},
		{name: "negative string", quantity: "-2", reason: ReasonInvalidQuantity},
		{name: "huge float", quantity: 1e20, reason: ReasonInvalidQuantity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ParseTicketTypeRequest("ADULT", tc.quantity)
			if tc.reason != "" {
				reason, ok := ReasonOf(err)
				require.True(t, ok, "expected an invalid purchase error, got %v", err)
				assert.Equal(t, tc.reason, reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.NoOfTickets())
		})
	}
}

func TestParseTicketTypeRequest_InvalidTypeWins(t *testing.T) {
	_, err := ParseTicketTypeRequest("ERROR", "Qty")
	assert.True(t, errors.Is(err, ErrInvalidCategory))
}

func TestParseTicketSpec(t *testing.T) {
	r, err := ParseTicketSpec("child:2")
	require.NoError(t, err)
	assert.Equal(t, Child, r.TicketType())
	assert.Equal(t, 2, r.NoOfTickets())

	_, err = ParseTicketSpec("ADULT")
	assert.True(t, errors.Is(err, ErrInvalidQuantity))

	_, err = ParseTicketSpec("SENIOR:1")
	assert.True(t, errors.Is(err, ErrInvalidCategory))
}

func TestTicketTypeRequest_ZeroValueIsNotWellFormed(t *testing.T) {
	assert.False(t, TicketTypeRequest{}.wellFormed())
}
