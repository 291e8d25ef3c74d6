package models

import (
	"bitbucket.org/parqueoasis/cinema-tickets/tickets"
	"github.com/thedevsaddam/govalidator"
)

type PurchaseTicketsOpts struct {
	Tickets []TicketRequestOpts `json:"tickets"`
}

// TicketRequestOpts keeps the quantity untyped so fractional and non-numeric
// values reach the ticket rules instead of failing JSON decoding.
type TicketRequestOpts struct {
	Type     string      `json:"type"`
	Quantity interface{} `json:"quantity"`
}

var PurchaseTicketsRules = govalidator.MapData{
	"tickets": []string{"required"},
}

// TicketTypeRequests converts the body lines, failing on the first bad line.
func (o *PurchaseTicketsOpts) TicketTypeRequests() ([]tickets.TicketTypeRequest, error) {
	requests := make([]tickets.TicketTypeRequest, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		r, err := tickets.ParseTicketTypeRequest(t.Type, t.Quantity)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, nil
}

type QuoteTicketsOpts struct {
	Adult  int `schema:"adult"`
	Child  int `schema:"child"`
	Infant int `schema:"infant"`
}

var QuoteTicketsRules = govalidator.MapData{
	"adult":  []string{"ticket_quantity"},
	"child":  []string{"ticket_quantity"},
	"infant": []string{"ticket_quantity"},
}

// TicketTypeRequests builds one line per category with a positive quantity.
func (o *QuoteTicketsOpts) TicketTypeRequests() ([]tickets.TicketTypeRequest, error) {
	var requests []tickets.TicketTypeRequest
	for _, line := range []struct {
		ticketType tickets.TicketType
		quantity   int
	}{
		{tickets.Adult, o.Adult},
		{tickets.Child, o.Child},
		{tickets.Infant, o.Infant},
	} {
		if line.quantity == 0 {
			continue
		}
		r, err := tickets.NewTicketTypeRequest(line.ticketType, line.quantity)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, nil
}

type Purchase struct {
	AccountID   int    `json:"account_id"`
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url,omitempty"`
	tickets.Summary
}

type PurchaseReceiptHTML struct {
	Reference     string
	Name          string
	Date          string
	AdultTickets  int
	ChildTickets  int
	InfantTickets int
	TotalSeats    int
	TotalAmount   int
	Image         string
}
