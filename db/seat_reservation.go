package db

import (
	"bitbucket.org/parqueoasis/cinema-tickets/models"
	"github.com/pkg/errors"
)

type SeatReservationStorage interface {
	InsertSeatReservation(*InsertSeatReservationOpts) (*models.SeatReservation, error)
	ReserveSeat(accountID int, totalSeats int) error
}

type InsertSeatReservationOpts struct {
	UUID      string `db:"uuid"`
	AccountID int    `db:"account_id"`
	Seats     int    `db:"seats"`
}

const (
	insertSeatReservation = `
	INSERT INTO seat_reservation
		(uuid, account_id, seats)
	VALUES
		(:uuid, :account_id, :seats)
	`
)

// ReserveSeat stores a reservation of totalSeats seats for the account.
func (db *DB) ReserveSeat(accountID int, totalSeats int) error {
	if totalSeats <= 0 {
		return errors.Errorf("cannot reserve %d seats", totalSeats)
	}

	reservation, err := db.InsertSeatReservation(&InsertSeatReservationOpts{
		UUID:      GenerateReservationUUID(),
		AccountID: accountID,
		Seats:     totalSeats,
	})
	if err != nil {
		return err
	}

	logger().WithField("reservation_uuid", reservation.UUID).Info("seats reserved")
	return nil
}

func (db *DB) InsertSeatReservation(opts *InsertSeatReservationOpts) (*models.SeatReservation, error) {
	err := db.inTx(func(tx Tx) error {
		return execNamedTx(tx, insertSeatReservation, opts)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed inserting seat reservation")
	}

	return &models.SeatReservation{
		UUID:      opts.UUID,
		AccountID: opts.AccountID,
		Seats:     opts.Seats,
	}, nil
}
