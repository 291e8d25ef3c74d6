package tickets

import (
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seatCall struct {
	accountID  int
	totalSeats int
}

type fakeSeatReservation struct {
	calls []seatCall
	err   error
}

func (f *fakeSeatReservation) ReserveSeat(accountID int, totalSeats int) error {
	f.calls = append(f.calls, seatCall{accountID, totalSeats})
	return f.err
}

type paymentCall struct {
	accountID   int
	totalAmount int
}

type fakePayment struct {
	calls []paymentCall
	err   error
}

func (f *fakePayment) MakePayment(accountID int, totalAmount int) error {
	f.calls = append(f.calls, paymentCall{accountID, totalAmount})
	return f.err
}

func mustRequest(t *testing.T, tt TicketType, n int) TicketTypeRequest {
	t.Helper()
	r, err := NewTicketTypeRequest(tt, n)
	require.NoError(t, err)
	return r
}

func newTestService() (*TicketService, *fakeSeatReservation, *fakePayment) {
	seats := &fakeSeatReservation{}
	payment := &fakePayment{}
	logger, _ := test.NewNullLogger()
	ts := NewTicketService(
		WithSeatReservation(seats),
		WithPayment(payment),
		WithLogger(log.NewEntry(logger)),
	)
	return ts, seats, payment
}

func TestTicketService_PurchaseTickets_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		requests  func(t *testing.T) []TicketTypeRequest
		wantTotal int
		wantSeats int
	}{
		{
			name: "one child one adult",
			requests: func(t *testing.T) []TicketTypeRequest {
				return []TicketTypeRequest{mustRequest(t, Child, 1), mustRequest(t, Adult, 1)}
			},
			wantTotal: 30,
			wantSeats: 2,
		},
		{
			name: "two adults one child",
			requests: func(t *testing.T) []TicketTypeRequest {
				return []TicketTypeRequest{mustRequest(t, Adult, 2), mustRequest(t, Child, 1)}
			},
			wantTotal: 50,
			wantSeats: 3,
		},
		{
			name: "two adults two children three infants",
			requests: func(t *testing.T) []TicketTypeRequest {
				return []TicketTypeRequest{mustRequest(t, Adult, 2), mustRequest(t, Child, 2), mustRequest(t, Infant, 3)}
			},
			wantTotal: 60,
			wantSeats: 4,
		},
		{
			name: "single line at the cap",
			requests: func(t *testing.T) []TicketTypeRequest {
				return []TicketTypeRequest{mustRequest(t, Adult, 20)}
			},
			wantTotal: 400,
			wantSeats: 20,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts, seats, payment := newTestService()

			total, err := ts.PurchaseTickets(123, tc.requests(t)...)

			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, total)
			assert.Equal(t, []seatCall{{123, tc.wantSeats}}, seats.calls)
			assert.Equal(t, []paymentCall{{123, tc.wantTotal}}, payment.calls)
		})
	}
}

func TestTicketService_Purchase_Summary(t *testing.T) {
	ts, _, _ := newTestService()

	summary, err := ts.Purchase(7, mustRequest(t, Infant, 1), mustRequest(t, Adult, 3), mustRequest(t, Child, 4))

	require.NoError(t, err)
	assert.Equal(t, Summary{
		AdultTickets:  3,
		ChildTickets:  4,
		InfantTickets: 1,
		TotalSeats:    7,
		TotalAmount:   100,
	}, summary)
}

func TestTicketService_PurchaseTickets_InvalidAccount(t *testing.T) {
	for _, accountID := range []int{0, -1, -123} {
		ts, seats, payment := newTestService()

		total, err := ts.PurchaseTickets(accountID, mustRequest(t, Adult, 1))

		assert.True(t, errors.Is(err, ErrInvalidAccount), "account %d", accountID)
		assert.Zero(t, total)
		assert.Empty(t, seats.calls)
		assert.Empty(t, payment.calls)
	}
}

func TestTicketService_PurchaseTickets_InvalidAccountWinsOverBadTickets(t *testing.T) {
	ts, _, _ := newTestService()

	_, err := ts.PurchaseTickets(0, mustRequest(t, Child, 1), TicketTypeRequest{})

	assert.True(t, errors.Is(err, ErrInvalidAccount))
}

func TestTicketService_PurchaseTickets_OverLineCap(t *testing.T) {
	ts, seats, payment := newTestService()

	_, err := ts.PurchaseTickets(123, mustRequest(t, Adult, 21))

	assert.True(t, errors.Is(err, ErrInvalidTicketRequest))
	assert.Empty(t, seats.calls)
	assert.Empty(t, payment.calls)
}

func TestTicketService_PurchaseTickets_CapIsPerLine(t *testing.T) {
	ts, seats, _ := newTestService()

	total, err := ts.PurchaseTickets(123, mustRequest(t, Adult, 20), mustRequest(t, Adult, 20), mustRequest(t, Child, 5))

	require.NoError(t, err)
	assert.Equal(t, 850, total)
	assert.Equal(t, []seatCall{{123, 45}}, seats.calls)
}

func TestTicketService_PurchaseTickets_MalformedRequest(t *testing.T) {
	ts, seats, payment := newTestService()

	_, err := ts.PurchaseTickets(123, mustRequest(t, Adult, 1), TicketTypeRequest{})

	assert.True(t, errors.Is(err, ErrInvalidTicketRequest))
	assert.Empty(t, seats.calls)
	assert.Empty(t, payment.calls)
}

func TestTicketService_PurchaseTickets_NoAdult(t *testing.T) {
	ts, seats, payment := newTestService()

	_, err := ts.PurchaseTickets(123, mustRequest(t, Child, 1), mustRequest(t, Infant, 1))

	assert.True(t, errors.Is(err, ErrNoAdultTicket))
	assert.Empty(t, seats.calls)
	assert.Empty(t, payment.calls)
}

func TestTicketService_PurchaseTickets_NoAdultDetectedAfterAllLines(t *testing.T) {
	ts, _, _ := newTestService()

	_, err := ts.PurchaseTickets(123, mustRequest(t, Infant, 2))
	assert.True(t, errors.Is(err, ErrNoAdultTicket))

	total, err := ts.PurchaseTickets(123, mustRequest(t, Infant, 2), mustRequest(t, Adult, 1))
	require.NoError(t, err)
	assert.Equal(t, 20, total)
}

func TestTicketService_PurchaseTickets_NoRequests(t *testing.T) {
	ts, seats, payment := newTestService()

	_, err := ts.PurchaseTickets(123)

	assert.True(t, errors.Is(err, ErrNoAdultTicket))
	assert.Empty(t, seats.calls)
	assert.Empty(t, payment.calls)
}

func TestTicketService_PurchaseTickets_RejectionIsRepeatable(t *testing.T) {
	ts, seats, payment := newTestService()
	child := mustRequest(t, Child, 1)

	_, first := ts.PurchaseTickets(123, child)
	_, second := ts.PurchaseTickets(123, child)

	require.Error(t, first)
	assert.Equal(t, first.Error(), second.Error())
	assert.Empty(t, seats.calls)
	assert.Empty(t, payment.calls)
}

func TestTicketService_PurchaseTickets_NoStateBetweenCalls(t *testing.T) {
	ts, seats, payment := newTestService()

	_, err := ts.PurchaseTickets(1, mustRequest(t, Adult, 2))
	require.NoError(t, err)
	_, err = ts.PurchaseTickets(1, mustRequest(t, Child, 1))
	require.Error(t, err)
	total, err := ts.PurchaseTickets(2, mustRequest(t, Adult, 1))
	require.NoError(t, err)

	assert.Equal(t, 20, total)
	assert.Equal(t, []seatCall{{1, 2}, {2, 1}}, seats.calls)
	assert.Equal(t, []paymentCall{{1, 40}, {2, 20}}, payment.calls)
}

func TestTicketService_PurchaseTickets_AbsentCollaborators(t *testing.T) {
	ts := NewTicketService()
	assert.False(t, ts.HasSeatReservation())
	assert.False(t, ts.HasPayment())

	total, err := ts.PurchaseTickets(123, mustRequest(t, Adult, 1))

	require.NoError(t, err)
	assert.Equal(t, 20, total)
}

func TestTicketService_PurchaseTickets_NilCollaboratorsAreAbsent(t *testing.T) {
	ts := NewTicketService(WithSeatReservation(nil), WithPayment(nil))

	total, err := ts.PurchaseTickets(123, mustRequest(t, Adult, 2))

	require.NoError(t, err)
	assert.Equal(t, 40, total)
}

func TestTicketService_PurchaseTickets_OnlyPayment(t *testing.T) {
	payment := &fakePayment{}
	ts := NewTicketService(WithPayment(payment))

	_, err := ts.PurchaseTickets(9, mustRequest(t, Adult, 1))

	require.NoError(t, err)
	assert.Equal(t, []paymentCall{{9, 20}}, payment.calls)
}

func TestTicketService_With_ReplacesPaymentOnCopy(t *testing.T) {
	ts, seats, payment := newTestService()
	other := &fakePayment{}

	_, err := ts.With(WithPayment(other)).PurchaseTickets(123, mustRequest(t, Adult, 1))

	require.NoError(t, err)
	assert.Equal(t, []seatCall{{123, 1}}, seats.calls)
	assert.Equal(t, []paymentCall{{123, 20}}, other.calls)
	assert.Empty(t, payment.calls)

	_, err = ts.PurchaseTickets(123, mustRequest(t, Adult, 1))

	require.NoError(t, err)
	assert.Equal(t, []paymentCall{{123, 20}}, payment.calls)
	assert.Len(t, other.calls, 1)
}

func TestTicketService_PurchaseTickets_SeatFailureSkipsPayment(t *testing.T) {
	ts, seats, payment := newTestService()
	seats.err = errors.New("no seats left")

	_, err := ts.PurchaseTickets(123, mustRequest(t, Adult, 1))

	require.Error(t, err)
	assert.False(t, IsInvalidPurchase(err))
	assert.Contains(t, err.Error(), "no seats left")
	assert.Len(t, seats.calls, 1)
	assert.Empty(t, payment.calls)
}

func TestTicketService_PurchaseTickets_PaymentFailure(t *testing.T) {
	ts, _, payment := newTestService()
	payment.err = errors.New("card declined")

	_, err := ts.PurchaseTickets(123, mustRequest(t, Adult, 1))

	require.Error(t, err)
	assert.Equal(t, "card declined", errors.Cause(err).Error())
	assert.Len(t, payment.calls, 1)
}

func TestTicketService_Quote(t *testing.T) {
	ts, seats, payment := newTestService()

	summary, err := ts.Quote(mustRequest(t, Adult, 1), mustRequest(t, Child, 1))

	require.NoError(t, err)
	assert.Equal(t, 30, summary.TotalAmount)
	assert.Equal(t, 2, summary.TotalSeats)
	assert.Empty(t, seats.calls)
	assert.Empty(t, payment.calls)
}

func TestTicketService_LogsRejections(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ts := NewTicketService(WithLogger(log.NewEntry(logger)))

	_, err := ts.PurchaseTickets(123, mustRequest(t, Child, 1))
	require.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Equal(t, 123, entry.Data["account_id"])
	assert.Equal(t, ReasonNoAdultTicket, entry.Data["reason"])
}

func TestReasonOf(t *testing.T) {
	reason, ok := ReasonOf(errors.Wrap(ErrNoAdultTicket, "outer"))
	assert.True(t, ok)
	assert.Equal(t, ReasonNoAdultTicket, reason)

	_, ok = ReasonOf(errors.New("other"))
	assert.False(t, ok)
	assert.False(t, errors.Is(ErrNoAdultTicket, ErrInvalidAccount))
}
