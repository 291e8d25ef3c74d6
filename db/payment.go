package db

import (
	"bitbucket.org/parqueoasis/cinema-tickets/models"
	"github.com/pkg/errors"
)

type PaymentStorage interface {
	InsertPayment(*InsertPaymentOpts) (*models.Payment, error)
	MakePayment(accountID int, totalAmount int) error
	RecordCheckout(accountID int, totalAmount int, preferenceID string, reference string) error
}

type InsertPaymentOpts struct {
	MethodID     int    `db:"method_id"`
	AccountID    int    `db:"account_id"`
	Amount       int    `db:"amount"`
	PreferenceID string `db:"preference_id"`
	Reference    string `db:"reference"`
	StatusID     int    `db:"status_id"`
}

const (
	insertPayment = `
	INSERT INTO payment
		(method_id, account_id, amount, preference_id, reference, status_id)
	VALUES
		(:method_id, :account_id, :amount, :preference_id, :reference, :status_id)
	`
)

// MakePayment records a cashier payment, approved on the spot.
func (db *DB) MakePayment(accountID int, totalAmount int) error {
	if totalAmount < 0 {
		return errors.Errorf("cannot charge %d", totalAmount)
	}

	reference := GeneratePaymentReference()
	payment, err := db.InsertPayment(&InsertPaymentOpts{
		MethodID:     ConstPaymentMethods.Cashier.ID,
		AccountID:    accountID,
		Amount:       totalAmount,
		PreferenceID: reference,
		Reference:    reference,
		StatusID:     ConstPaymentStatuses.Approved.ID,
	})
	if err != nil {
		return err
	}

	logger().WithField("preference_id", payment.PreferenceID).Info("payment recorded")
	return nil
}

// RecordCheckout records a Mercado Pago preference waiting to be paid.
func (db *DB) RecordCheckout(accountID int, totalAmount int, preferenceID string, reference string) error {
	if preferenceID == "" {
		return errors.New("missing preference id")
	}

	_, err := db.InsertPayment(&InsertPaymentOpts{
		MethodID:     ConstPaymentMethods.MercadoPago.ID,
		AccountID:    accountID,
		Amount:       totalAmount,
		PreferenceID: preferenceID,
		Reference:    reference,
		StatusID:     ConstPaymentStatuses.Created.ID,
	})
	return err
}

func (db *DB) InsertPayment(opts *InsertPaymentOpts) (*models.Payment, error) {
	err := db.inTx(func(tx Tx) error {
		return execNamedTx(tx, insertPayment, opts)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed inserting payment")
	}

	return &models.Payment{
		Method:       &models.PaymentMethod{ID: opts.MethodID},
		AccountID:    opts.AccountID,
		Amount:       opts.Amount,
		PreferenceID: opts.PreferenceID,
		Reference:    opts.Reference,
		Status:       &models.PaymentStatus{ID: opts.StatusID},
	}, nil
}
