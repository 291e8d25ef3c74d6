package db

import "bitbucket.org/parqueoasis/cinema-tickets/models"

var ConstPaymentStatuses = struct {
	Created  models.PaymentStatus
	Approved models.PaymentStatus
}{
	Created: models.PaymentStatus{
		ID:   1,
		Name: "Created",
	},
	Approved: models.PaymentStatus{
		ID:   2,
		Name: "Approved",
	},
}

var ConstPaymentMethods = struct {
	Cashier     models.PaymentMethod
	MercadoPago models.PaymentMethod
}{
	Cashier: models.PaymentMethod{
		ID:   1,
		Name: "Cashier",
	},
	MercadoPago: models.PaymentMethod{
		ID:   2,
		Name: "Mercado Pago",
	},
}
