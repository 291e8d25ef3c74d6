package tickets

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	MaxTicketsPerRequest = 20
	AdultTicketPrice     = 20
	ChildTicketPrice     = 10
	InfantTicketPrice    = 0
)

// SeatReservationService reserves totalSeats seats for an account.
type SeatReservationService interface {
	ReserveSeat(accountID int, totalSeats int) error
}

// TicketPaymentService charges totalAmount to an account.
type TicketPaymentService interface {
	MakePayment(accountID int, totalAmount int) error
}

// Summary holds the totals of one purchase.
type Summary struct {
	AdultTickets  int `json:"adult_tickets"`
	ChildTickets  int `json:"child_tickets"`
	InfantTickets int `json:"infant_tickets"`
	TotalSeats    int `json:"total_seats"`
	TotalAmount   int `json:"total_amount"`
}

type TicketService struct {
	seats   SeatReservationService
	payment TicketPaymentService
	logger  *log.Entry
}

type Option func(*TicketService)

// WithSeatReservation wires the seat reservation collaborator. A nil service
// leaves reservation absent.
func WithSeatReservation(s SeatReservationService) Option {
	return func(ts *TicketService) {
		ts.seats = s
	}
}

// WithPayment wires the payment collaborator. A nil service leaves payment absent.
func WithPayment(p TicketPaymentService) Option {
	return func(ts *TicketService) {
		ts.payment = p
	}
}

func WithLogger(l *log.Entry) Option {
	return func(ts *TicketService) {
		if l != nil {
			ts.logger = l
		}
	}
}

func NewTicketService(opts ...Option) *TicketService {
	ts := &TicketService{
		logger: log.NewEntry(log.StandardLogger()),
	}
	for _, With := range opts {
		With(ts)
	}
	return ts
}

// With returns a copy of the service with opts applied on top of its own.
func (ts *TicketService) With(opts ...Option) *TicketService {
	clone := *ts
	for _, With := range opts {
		With(&clone)
	}
	return &clone
}

func (ts *TicketService) HasSeatReservation() bool {
	return ts.seats != nil
}

func (ts *TicketService) HasPayment() bool {
	return ts.payment != nil
}

// PurchaseTickets validates and prices the requests, reserves the seats, takes
// the payment and returns the amount paid. Nothing is reserved or charged when
// any rule fails.
func (ts *TicketService) PurchaseTickets(accountID int, ticketTypeRequests ...TicketTypeRequest) (int, error) {
	summary, err := ts.Purchase(accountID, ticketTypeRequests...)
	if err != nil {
		return 0, err
	}
	return summary.TotalAmount, nil
}

// Purchase is PurchaseTickets returning every total instead of the amount only.
func (ts *TicketService) Purchase(accountID int, ticketTypeRequests ...TicketTypeRequest) (Summary, error) {
	logger := ts.logger.WithField("account_id", accountID)

	if accountID <= 0 {
		err := invalidPurchase(ReasonInvalidAccount, "account id %d", accountID)
		logger.WithField("reason", ReasonInvalidAccount).Warn("purchase rejected")
		return Summary{}, err
	}

	summary, err := ts.Quote(ticketTypeRequests...)
	if err != nil {
		reason, _ := ReasonOf(err)
		logger.WithField("reason", reason).Warn("purchase rejected")
		return Summary{}, err
	}

	if ts.seats != nil {
		if err := ts.seats.ReserveSeat(accountID, summary.TotalSeats); err != nil {
			return Summary{}, errors.Wrapf(err, "failed reserving %d seats for account %d", summary.TotalSeats, accountID)
		}
	}

	if ts.payment != nil {
		if err := ts.payment.MakePayment(accountID, summary.TotalAmount); err != nil {
			return Summary{}, errors.Wrapf(err, "failed charging %d to account %d", summary.TotalAmount, accountID)
		}
	}

	logger.WithFields(log.Fields{
		"total_seats":  summary.TotalSeats,
		"total_amount": summary.TotalAmount,
	}).Info("purchase accepted")

	return summary, nil
}

// Quote applies the ticket rules and prices the requests without an account
// and without calling any collaborator.
func (ts *TicketService) Quote(ticketTypeRequests ...TicketTypeRequest) (Summary, error) {
	var summary Summary

	for i, r := range ticketTypeRequests {
		if !r.wellFormed() {
			return Summary{}, invalidPurchase(ReasonInvalidTicketRequest, "request %d is not a ticket request", i)
		}
		if r.NoOfTickets() > MaxTicketsPerRequest {
			return Summary{}, invalidPurchase(ReasonInvalidTicketRequest, "request %d asks for %d tickets, at most %d allowed", i, r.NoOfTickets(), MaxTicketsPerRequest)
		}

		switch r.TicketType() {
		case Adult:
			summary.AdultTickets += r.NoOfTickets()
			summary.TotalAmount += r.NoOfTickets() * AdultTicketPrice
			summary.TotalSeats += r.NoOfTickets()
		case Child:
			summary.ChildTickets += r.NoOfTickets()
			summary.TotalAmount += r.NoOfTickets() * ChildTicketPrice
			summary.TotalSeats += r.NoOfTickets()
		case Infant:
			// infants sit on an adult's lap
			summary.InfantTickets += r.NoOfTickets()
			summary.TotalAmount += r.NoOfTickets() * InfantTicketPrice
		default:
			return Summary{}, invalidPurchase(ReasonInvalidTicketRequest, "request %d has ticket type %s", i, r.TicketType())
		}
	}

	if summary.AdultTickets <= 0 {
		return Summary{}, invalidPurchase(ReasonNoAdultTicket, "%d child and %d infant tickets without an adult", summary.ChildTickets, summary.InfantTickets)
	}

	return summary, nil
}
