package models

import "time"

type SeatReservation struct {
	ID        int       `json:"id,omitempty"`
	UUID      string    `json:"uuid"`
	AccountID int       `json:"account_id"`
	Seats     int       `json:"seats"`
	Created   time.Time `json:"created"`
}
