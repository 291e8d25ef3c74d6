package config

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	db "bitbucket.org/parqueoasis/cinema-tickets/db"
	mercadopago "bitbucket.org/parqueoasis/cinema-tickets/mercadopago"
	"bitbucket.org/parqueoasis/cinema-tickets/tickets"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

const (
	PaymentMethodNone        = "none"
	PaymentMethodCashier     = "cashier"
	PaymentMethodMercadoPago = "mercadopago"
)

type Configuration struct {
	JWTSecret     string `env:"JWT_SECRET,required"`
	Port          int    `env:"PORT,default=3001"`
	Timeout       int    `env:"TIMEOUT,default=5"`
	PaymentMethod string `env:"PAYMENT_METHOD"`
	SQL           database
	AwsSMTP       awsSMTP
	AwsS3         awsS3
	MercadoPago   mercadopagoConf
	Mail          mail
	Environment   string `env:"ENVIRONMENT,default=development"`
	AppName       string `env:"APP_NAME,default=cinema-tickets"`
}

type database struct {
	Driver         string `env:"DATA_BASE_DRIVER,default=mysql"`
	URL            string `env:"DATA_BASE_URL"`
	Name           string `env:"DATA_BASE_NAME"`
	User           string `env:"DATA_BASE_USER"`
	Port           int    `env:"DATA_BASE_PORT,default=3306"`
	Password       string `env:"DATA_BASE_PASSWORD"`
	OpenConnection int    `env:"DATA_BASE_MAX_OPEN_CONNECTION,default=5"`
}

func (d database) Enabled() bool {
	return d.URL != ""
}

type awsSMTP struct {
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}

func (s awsSMTP) Enabled() bool {
	return s.SMTPHost != ""
}

type mercadopagoConf struct {
	BaseURL         string `env:"MERCADOPAGO_BASEURL,default=https://api.mercadopago.com"`
	Token           string `env:"MERCADOPAGO_TOKEN"`
	PathPreferences string `env:"MERCADOPAGO_PATH_PREFERENCES,default=/checkout/preferences"`
	NotificationURL string `env:"MERCADOPAGO_NOTIFICATION_URL"`
	SuccessURL      string `env:"MERCADOPAGO_SUCCESS_URL"`
	FailureURL      string `env:"MERCADOPAGO_FAILURE_URL"`
	Timeout         int    `env:"MERCADOPAGO_TIMEOUT,default=10"`
}

type awsS3 struct {
	S3Region      string `env:"S3_REGION"`
	S3Bucket      string `env:"S3_BUCKET"`
	S3PathReceipt string `env:"S3_PATH_RECEIPT,default=receipt"`
}

func (s awsS3) Enabled() bool {
	return s.S3Bucket != ""
}

type mail struct {
	PurchaseSuccess mailPurchaseSuccess
	NameFrom        string `env:"MAIL_NAME_FROM,default=Cinema Tickets"`
	EmailFrom       string `env:"MAIL_EMAIL_FROM"`
	Folder          string `env:"MAIL_FOLDER,default=./templates"`
	Path            string `env:"MAIL_PATH,default=/mail"`
	ReceiptTemplate string `env:"RECEIPT_TEMPLATE,default=./templates/pdf/receipt.html"`
}

type mailPurchaseSuccess struct {
	Subject  string `env:"MAIL_PURCHASE_SUCCESS_SUBJECT,default=Your cinema tickets"`
	Template string `env:"MAIL_PURCHASE_SUCCESS_TEMPLATE,default=receipt.html"`
	FileName string `env:"MAIL_PURCHASE_SUCCESS_FILENAME,default=receipt.pdf"`
}

func (m mail) PurchaseSuccessTemplatePath() string {
	return fmt.Sprintf("%s%s/%s", m.Folder, m.Path, m.PurchaseSuccess.Template)
}

type AppContext struct {
	Config      Configuration
	SQLConn     *sqlx.DB
	DB          db.Storage
	AwsSMTP     *gomail.Dialer
	AwsS3       *session.Session
	MercadoPago *mercadopago.MP
	Tickets     *tickets.TicketService
}

func CreateConnectionSQL(conf database) (*sqlx.DB, error) {
	var dsn string
	switch conf.Driver {
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", conf.User, conf.Password, conf.URL, strconv.Itoa(conf.Port), conf.Name)
	case "postgres":
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", conf.URL, conf.Port, conf.User, conf.Password, conf.Name)
	default:
		return nil, errors.Errorf("unsupported database driver %q", conf.Driver)
	}
	connection, err := sqlx.Connect(conf.Driver, dsn)
	if err != nil {
		return nil, err
	}
	connection.SetMaxOpenConns(conf.OpenConnection)
	return connection, nil
}

func CreateNewConnectionSMTP(conf awsSMTP) *gomail.Dialer {
	conn := gomail.NewDialer(conf.SMTPHost, conf.SMTPPort, conf.SMTPUser, conf.SMTPPassword)
	return conn
}

// CreateMercadoPagoIntegration builds the Mercado Pago client. Preferences are
// recorded through recorder when it is not nil.
func CreateMercadoPagoIntegration(conf mercadopagoConf, recorder mercadopago.PaymentRecorder) *mercadopago.MP {
	mp := mercadopago.MP{
		BaseURL:         conf.BaseURL,
		Token:           conf.Token,
		PathPreferences: conf.PathPreferences,
		NotificationURL: conf.NotificationURL,
		SuccessURL:      conf.SuccessURL,
		FailureURL:      conf.FailureURL,
		Client:          &http.Client{Timeout: time.Duration(conf.Timeout) * time.Second},
		Recorder:        recorder,
	}

	return &mp
}

func CreateNewSessionS3(conf awsS3) (*session.Session, error) {
	s, err := session.NewSession(&aws.Config{Region: aws.String(conf.S3Region)})
	return s, err
}

// PaymentMethod is the configured payment method. When none is configured it
// is cashier with a database and none without one.
func (ctx *AppContext) PaymentMethod() string {
	if ctx.Config.PaymentMethod != "" {
		return ctx.Config.PaymentMethod
	}
	if ctx.DB != nil {
		return PaymentMethodCashier
	}
	return PaymentMethodNone
}

// CreateTicketService wires the collaborators the context has: seats are
// reserved in the database when there is one, and the payment collaborator
// follows PaymentMethod.
func CreateTicketService(ctx *AppContext) (*tickets.TicketService, error) {
	opts := []tickets.Option{
		tickets.WithLogger(log.WithField("component", "tickets")),
	}

	if ctx.DB != nil {
		opts = append(opts, tickets.WithSeatReservation(ctx.DB))
	}

	switch method := ctx.PaymentMethod(); method {
	case PaymentMethodNone:
	case PaymentMethodCashier:
		if ctx.DB == nil {
			return nil, errors.New("cashier payments need a database")
		}
		opts = append(opts, tickets.WithPayment(ctx.DB))
	case PaymentMethodMercadoPago:
		if ctx.MercadoPago == nil {
			return nil, errors.New("mercadopago payments need the mercadopago integration")
		}
		opts = append(opts, tickets.WithPayment(ctx.MercadoPago))
	default:
		return nil, errors.Errorf("unknown payment method %q", method)
	}

	return tickets.NewTicketService(opts...), nil
}

var logger = log.NewEntry(log.StandardLogger())

func SetLogger(newLogger *log.Entry) {
	logger = newLogger
}

func GetLogger() *log.Entry {
	return logger
}
