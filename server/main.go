package server

import (
	"fmt"
	"net/http"
	"time"

	"bitbucket.org/parqueoasis/cinema-tickets/config"
	"bitbucket.org/parqueoasis/cinema-tickets/db"
	"bitbucket.org/parqueoasis/cinema-tickets/mercadopago"
	"bitbucket.org/parqueoasis/cinema-tickets/middlewares"
	"github.com/gorilla/mux"
	"github.com/joeshaw/envdecode"
	joonix "github.com/joonix/log"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

func recoveryHandler(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	defer func() {
		if err := recover(); err != nil {
			middlewares.LoggerFromContext(r.Context()).Error(err)
			(&middlewares.ResponseWriter{Writer: w}).Error(http.StatusInternalServerError, "internal server error")
			return
		}
	}()
	next(w, r)
}

type AppHandlerFunc func(*config.AppContext, *middlewares.ResponseWriter, *http.Request)

type AppHandler struct {
	Context     *config.AppContext
	HandlerFunc AppHandlerFunc
}

func (a *AppHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := &middlewares.ResponseWriter{
		Writer: w,
		Logger: middlewares.LoggerFromContext(r.Context()),
	}
	rw.GetRequestLanguage(r)
	a.HandlerFunc(a.Context, rw, r)
}

type Route struct {
	Path        string
	Handler     AppHandlerFunc
	Methods     []string
	IsProtected bool
}

func NewRouter(ctx *config.AppContext, routes []*Route) *mux.Router {
	router := mux.NewRouter()
	for _, r := range routes {
		handler := &AppHandler{Context: ctx, HandlerFunc: r.Handler}
		if r.IsProtected {
			router.Handle(r.Path, negroni.New(
				negroni.HandlerFunc(middlewares.NewJWTMiddleware([]byte(ctx.Config.JWTSecret)).HandlerNext),
				negroni.Wrap(handler),
			)).Methods(r.Methods...)
			continue
		}
		router.Handle(r.Path, handler).Methods(r.Methods...)
	}
	return router
}

func GetAppContext() *ContextWrapper {
	log.SetFormatter(joonix.NewFormatter())
	var conf config.Configuration
	if err := envdecode.Decode(&conf); err != nil {
		log.Fatal(errors.Wrap(err, "could not load the app configuration"))
	}
	config.SetLogger(log.WithFields(log.Fields{
		"app":         conf.AppName,
		"environment": conf.Environment,
	}))
	context := &config.AppContext{
		Config: conf,
	}

	contextWrapper := ContextWrapper{
		Context: context,
	}

	return &contextWrapper
}

type ContextWrapper struct {
	Context *config.AppContext
}

func (wrapper *ContextWrapper) CreateSQLConnection() {
	if !wrapper.Context.Config.SQL.Enabled() {
		log.Warn("no database configured, seats will not be reserved")
		return
	}
	conn, err := config.CreateConnectionSQL(wrapper.Context.Config.SQL)
	if err != nil {
		log.Fatal(err)
	}
	conn.SetConnMaxLifetime(time.Minute * 5)
	wrapper.Context.SQLConn = conn
	storage, err := db.New(conn)
	if err != nil {
		log.WithFields(log.Fields{
			"error": err,
		}).Fatalf("%s: failed to connect", wrapper.Context.Config.SQL.Driver)
	}
	wrapper.Context.DB = storage
}

func (wrapper *ContextWrapper) CreateSMTPConnection() {
	if !wrapper.Context.Config.AwsSMTP.Enabled() {
		log.Warn("no smtp configured, receipts will not be sent")
		return
	}
	conn := config.CreateNewConnectionSMTP(wrapper.Context.Config.AwsSMTP)
	if conn == nil {
		log.Fatal(errors.Errorf("failed connecting SMTP"))
	}
	wrapper.Context.AwsSMTP = conn
}

func (wrapper *ContextWrapper) CreateMercadoPagoIntegration() {
	if wrapper.Context.PaymentMethod() != config.PaymentMethodMercadoPago {
		return
	}
	var recorder mercadopago.PaymentRecorder
	if wrapper.Context.DB != nil {
		recorder = wrapper.Context.DB
	} else {
		log.Warn("no database configured, mercadopago preferences will not be recorded")
	}
	mp := config.CreateMercadoPagoIntegration(wrapper.Context.Config.MercadoPago, recorder)
	if mp == nil {
		log.Fatal(errors.Errorf("failed to create mercadopago integration"))
	}
	wrapper.Context.MercadoPago = mp
}

func (wrapper *ContextWrapper) CreateNewSessionS3() {
	if !wrapper.Context.Config.AwsS3.Enabled() {
		return
	}
	session, err := config.CreateNewSessionS3(wrapper.Context.Config.AwsS3)
	if err != nil {
		log.Fatal(errors.Errorf("failed to create new session s3 - %s", err.Error()))
	}
	if session == nil {
		log.Fatal(errors.Errorf("nil session s3"))
	}
	wrapper.Context.AwsS3 = session
}

func (wrapper *ContextWrapper) CreateTicketService() {
	service, err := config.CreateTicketService(wrapper.Context)
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to create ticket service"))
	}
	log.WithFields(log.Fields{
		"seat_reservation": service.HasSeatReservation(),
		"payment":          service.HasPayment(),
		"payment_method":   wrapper.Context.PaymentMethod(),
	}).Info("ticket service ready")
	wrapper.Context.Tickets = service
}

func UpServer(routes []*Route, wrapper *ContextWrapper) {
	server, err := createServer(wrapper.Context, routes)
	if err != nil {
		log.Fatal(err)
	}

	if wrapper.Context.SQLConn != nil {
		defer wrapper.Context.SQLConn.Close()
	}

	log.Info("Environment " + wrapper.Context.Config.Environment)
	log.Info("Listening on " + server.Addr)

	log.Fatal(server.ListenAndServe())
}

func NewHandler(context *config.AppContext, routes []*Route) http.Handler {
	n := negroni.New()
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "HEAD"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-Request-ID"},
	})
	n.Use(c)
	n.Use(negroni.HandlerFunc(middlewares.LoggerRequest))
	n.UseFunc(recoveryHandler)
	n.Use(middlewares.UserMiddleware())
	n.UseHandler(NewRouter(context, routes))
	return n
}

func createServer(context *config.AppContext, routes []*Route) (*http.Server, error) {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", context.Config.Port),
		ReadTimeout:  time.Duration(context.Config.Timeout) * time.Second,
		WriteTimeout: time.Duration(context.Config.Timeout) * time.Second,
		Handler:      NewHandler(context, routes),
	}, nil
}
