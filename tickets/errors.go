package tickets

import (
	"github.com/pkg/errors"
)

// Reason tells apart the causes of a rejected purchase.
type Reason string

const (
	ReasonInvalidAccount       Reason = "invalid_account"
	ReasonInvalidTicketRequest Reason = "invalid_ticket_request"
	ReasonInvalidCategory      Reason = "invalid_category"
	ReasonInvalidQuantity      Reason = "invalid_quantity"
	ReasonNoAdultTicket        Reason = "no_adult_ticket"
)

// InvalidPurchaseError is the only error kind the purchase rules produce.
type InvalidPurchaseError struct {
	Reason Reason
}

func (e *InvalidPurchaseError) Error() string {
	return "invalid purchase: " + string(e.Reason)
}

// Is matches any InvalidPurchaseError with the same reason, so the sentinels
// below can be used with errors.Is.
func (e *InvalidPurchaseError) Is(target error) bool {
	t, ok := target.(*InvalidPurchaseError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

var (
	ErrInvalidAccount       = &InvalidPurchaseError{Reason: ReasonInvalidAccount}
	ErrInvalidTicketRequest = &InvalidPurchaseError{Reason: ReasonInvalidTicketRequest}
	ErrInvalidCategory      = &InvalidPurchaseError{Reason: ReasonInvalidCategory}
	ErrInvalidQuantity      = &InvalidPurchaseError{Reason: ReasonInvalidQuantity}
	ErrNoAdultTicket        = &InvalidPurchaseError{Reason: ReasonNoAdultTicket}
)

func invalidPurchase(reason Reason, format string, args ...interface{}) error {
	return errors.WithMessagef(&InvalidPurchaseError{Reason: reason}, format, args...)
}

// IsInvalidPurchase reports whether err, or anything it wraps, is a rule violation.
func IsInvalidPurchase(err error) bool {
	var e *InvalidPurchaseError
	return errors.As(err, &e)
}

// ReasonOf returns the reason of the rule violation wrapped in err.
func ReasonOf(err error) (Reason, bool) {
	var e *InvalidPurchaseError
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Reason, true
}
