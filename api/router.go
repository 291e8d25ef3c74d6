package api

import (
	"net/http"

	"bitbucket.org/parqueoasis/cinema-tickets/config"
	"bitbucket.org/parqueoasis/cinema-tickets/middlewares"
	"bitbucket.org/parqueoasis/cinema-tickets/server"
)

// HealthcheckHandler indicates the service's healthy
func HealthcheckHandler(_ *config.AppContext, w *middlewares.ResponseWriter, _ *http.Request) {
	w.String(http.StatusOK, "OK")
}

// GetRoutes ...
func GetRoutes() []*server.Route {
	return []*server.Route{
		{Path: "/healthcheck", Methods: []string{"GET", "HEAD"}, Handler: HealthcheckHandler, IsProtected: false},

		// Purchase
		{Path: "/purchase", Methods: []string{"POST"}, Handler: PurchaseTickets, IsProtected: true},
		{Path: "/purchase/quote", Methods: []string{"GET", "HEAD"}, Handler: QuoteTickets, IsProtected: false},
	}
}
