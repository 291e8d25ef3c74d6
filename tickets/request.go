package tickets

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// TicketType is the category of a ticket line. The zero value is not a
// valid category.
type TicketType int

const (
	Adult TicketType = iota + 1
	Child
	Infant
)

var ticketTypeNames = map[TicketType]string{
	Adult:  "ADULT",
	Child:  "CHILD",
	Infant: "INFANT",
}

func (t TicketType) String() string {
	if name, ok := ticketTypeNames[t]; ok {
		return name
	}
	return "TicketType(" + strconv.Itoa(int(t)) + ")"
}

func (t TicketType) Valid() bool {
	_, ok := ticketTypeNames[t]
	return ok
}

// ParseTicketType accepts the upper-case category names ADULT, CHILD and INFANT.
func ParseTicketType(name string) (TicketType, error) {
	for t, n := range ticketTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, invalidPurchase(ReasonInvalidCategory, "unknown ticket type %q", name)
}

// TicketTypeRequest is one immutable purchase line.
type TicketTypeRequest struct {
	ticketType  TicketType
	noOfTickets int
}

func NewTicketTypeRequest(ticketType TicketType, noOfTickets int) (TicketTypeRequest, error) {
	if !ticketType.Valid() {
		return TicketTypeRequest{}, invalidPurchase(ReasonInvalidCategory, "unknown ticket type %d", int(ticketType))
	}
	if noOfTickets <= 0 {
		return TicketTypeRequest{}, invalidPurchase(ReasonInvalidQuantity, "%d tickets requested", noOfTickets)
	}
	return TicketTypeRequest{ticketType: ticketType, noOfTickets: noOfTickets}, nil
}

// ParseTicketTypeRequest builds a request from untyped input such as a decoded
// JSON body, a query string or a command line flag.
func ParseTicketTypeRequest(ticketType string, noOfTickets interface{}) (TicketTypeRequest, error) {
	t, err := ParseTicketType(ticketType)
	if err != nil {
		return TicketTypeRequest{}, err
	}
	n, err := parseQuantity(noOfTickets)
	if err != nil {
		return TicketTypeRequest{}, err
	}
	return NewTicketTypeRequest(t, n)
}

// ParseTicketSpec parses the TYPE:QUANTITY form, e.g. "ADULT:2".
func ParseTicketSpec(spec string) (TicketTypeRequest, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return TicketTypeRequest{}, invalidPurchase(ReasonInvalidQuantity, "missing quantity in %q", spec)
	}
	return ParseTicketTypeRequest(strings.ToUpper(strings.TrimSpace(parts[0])), strings.TrimSpace(parts[1]))
}

func parseQuantity(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return intFromInt64(n)
	case uint:
		return parseQuantity(uint64(n))
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return intFromInt64(int64(n))
	case uint64:
		if n > math.MaxInt32 {
			return 0, invalidPurchase(ReasonInvalidQuantity, "quantity %d is out of range", n)
		}
		return int(n), nil
	case float32:
		return intFromFloat(float64(n))
	case float64:
		return intFromFloat(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, invalidPurchase(ReasonInvalidQuantity, "quantity %q is not an integer", n.String())
		}
		return intFromInt64(i)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, invalidPurchase(ReasonInvalidQuantity, "quantity %q is not an integer", n)
		}
		return i, nil
	}
	return 0, invalidPurchase(ReasonInvalidQuantity, "quantity of type %T is not a number", v)
}

func intFromFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, invalidPurchase(ReasonInvalidQuantity, "quantity %v is not an integer", f)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, invalidPurchase(ReasonInvalidQuantity, "quantity %v is out of range", f)
	}
	return int(f), nil
}

func intFromInt64(i int64) (int, error) {
	if i > math.MaxInt32 || i < math.MinInt32 {
		return 0, invalidPurchase(ReasonInvalidQuantity, "quantity %d is out of range", i)
	}
	return int(i), nil
}

func (r TicketTypeRequest) TicketType() TicketType {
	return r.ticketType
}

func (r TicketTypeRequest) NoOfTickets() int {
	return r.noOfTickets
}

func (r TicketTypeRequest) wellFormed() bool {
	return r.ticketType.Valid() && r.noOfTickets > 0
}
