package api

import (
	"net/http"

	"bitbucket.org/parqueoasis/cinema-tickets/config"
	"bitbucket.org/parqueoasis/cinema-tickets/mercadopago"
	"bitbucket.org/parqueoasis/cinema-tickets/middlewares"
	"bitbucket.org/parqueoasis/cinema-tickets/models"
	"bitbucket.org/parqueoasis/cinema-tickets/tickets"
	"github.com/gorilla/schema"
	shortuuid "github.com/lithammer/shortuuid/v3"
	"github.com/thedevsaddam/govalidator"
)

// PurchaseTickets buys tickets for the authenticated account. With Mercado
// Pago the purchase is answered with the checkout link to pay it.
func PurchaseTickets(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	userInfo, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		w.Write(http.StatusUnauthorized, nil, nil, middlewares.Responses.Unauthorized, middlewares.WithErrorScope("token"))
		return
	}

	var opts models.PurchaseTicketsOpts
	validatorOpts := govalidator.Options{
		Request: r,
		Rules:   models.PurchaseTicketsRules,
		Data:    &opts,
	}
	v := govalidator.New(validatorOpts)
	errs := v.ValidateJSON()
	if len(errs) > 0 {
		w.Write(http.StatusBadRequest, errs, nil, middlewares.Responses.FailedValidations)
		return
	}

	requests, err := opts.TicketTypeRequests()
	if err != nil {
		writePurchaseError(w, err)
		return
	}

	reference := shortuuid.New()
	service := ctx.Tickets
	var checkout *mercadopago.Checkout
	if ctx.MercadoPago != nil && ctx.PaymentMethod() == config.PaymentMethodMercadoPago {
		checkout = ctx.MercadoPago.NewCheckout(reference)
		service = service.With(tickets.WithPayment(checkout))
	}

	summary, err := service.Purchase(userInfo.ID, requests...)
	if err != nil {
		writePurchaseError(w, err)
		return
	}

	purchase := &models.Purchase{
		AccountID: userInfo.ID,
		Reference: reference,
		Summary:   summary,
	}

	// the receipt waits for the payment when it is taken at checkout
	if checkout != nil {
		purchase.CheckoutURL = checkout.InitPoint()
	} else if receiptEnabled(ctx, userInfo) {
		go issueReceipt(ctx, w.Logger, purchase, userInfo)
	}

	w.Write(http.StatusOK, purchase, nil, nil)
}

// QuoteTickets prices a purchase without reserving or charging anything.
func QuoteTickets(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	validatorOpts := govalidator.Options{
		Request: r,
		Rules:   models.QuoteTicketsRules,
	}
	v := govalidator.New(validatorOpts)
	errs := v.Validate()
	if len(errs) > 0 {
		w.Write(http.StatusBadRequest, errs, nil, middlewares.Responses.FailedValidations)
		return
	}

	var opts models.QuoteTicketsOpts
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&opts, r.URL.Query()); err != nil {
		w.Write(http.StatusBadRequest, nil, err, middlewares.Responses.FailedValidations)
		return
	}

	requests, err := opts.TicketTypeRequests()
	if err != nil {
		writePurchaseError(w, err)
		return
	}

	summary, err := ctx.Tickets.Quote(requests...)
	if err != nil {
		writePurchaseError(w, err)
		return
	}

	w.Write(http.StatusOK, summary, nil, nil)
}

func writePurchaseError(w *middlewares.ResponseWriter, err error) {
	reason, ok := tickets.ReasonOf(err)
	if !ok {
		w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.PurchaseFailed)
		return
	}
	w.Write(http.StatusBadRequest, nil, err, middlewares.ReasonResponses[reason],
		middlewares.WithErrorScope(string(reason)),
		middlewares.WithErrorData(err.Error()),
	)
}
