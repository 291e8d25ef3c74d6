package models

import (
	"testing"

	"bitbucket.org/parqueoasis/cinema-tickets/tickets"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseTicketsOpts_TicketTypeRequests(t *testing.T) {
	opts := PurchaseTicketsOpts{Tickets: []TicketRequestOpts{
		{Type: "ADULT", Quantity: float64(2)},
		{Type: "INFANT", Quantity: "1"},
	}}

	requests, err := opts.TicketTypeRequests()

	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, tickets.Adult, requests[0].TicketType())
	assert.Equal(t, 2, requests[0].NoOfTickets())
	assert.Equal(t, tickets.Infant, requests[1].TicketType())
}

func TestPurchaseTicketsOpts_TicketTypeRequests_BadLine(t *testing.T) {
	opts := PurchaseTicketsOpts{Tickets: []TicketRequestOpts{
		{Type: "ADULT", Quantity: float64(2)},
		{Type: "CHILD", Quantity: 0.5},
	}}

	_, err := opts.TicketTypeRequests()

	assert.True(t, errors.Is(err, tickets.ErrInvalidQuantity))
}

func TestQuoteTicketsOpts_TicketTypeRequests(t *testing.T) {
	opts := QuoteTicketsOpts{Adult: 2, Infant: 1}

	requests, err := opts.TicketTypeRequests()

	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, tickets.Adult, requests[0].TicketType())
	assert.Equal(t, tickets.Infant, requests[1].TicketType())

	_, err = (&QuoteTicketsOpts{Child: -1}).TicketTypeRequests()
	assert.True(t, errors.Is(err, tickets.ErrInvalidQuantity))
}

func TestInfoUser_FullName(t *testing.T) {
	assert.Equal(t, "Ana", InfoUser{Firstname: "Ana"}.FullName())
	assert.Equal(t, "Ana Díaz", InfoUser{Firstname: "Ana", Lastname: "Díaz"}.FullName())
}
