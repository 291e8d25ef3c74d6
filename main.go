package main

import (
	"fmt"
	"os"
	"time"

	"bitbucket.org/parqueoasis/cinema-tickets/api"
	"bitbucket.org/parqueoasis/cinema-tickets/helpers"
	"bitbucket.org/parqueoasis/cinema-tickets/models"
	"bitbucket.org/parqueoasis/cinema-tickets/server"
	"bitbucket.org/parqueoasis/cinema-tickets/tickets"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	_ = godotenv.Load("dev.env")

	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "cinema-tickets"
	app.Usage = "Cinema ticket purchase service"
	app.Version = "1.00"
	app.Compiled = time.Now()
	app.Commands = []cli.Command{
		{
			Name:  "backend-up",
			Usage: "This command starts the backend service",
			Action: func(c *cli.Context) error {
				StartServer(api.GetRoutes())
				return nil
			},
		},
		{
			Name:      "purchase",
			Usage:     "Validates and prices a purchase without reserving seats or taking payment",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "account", Usage: "account id"},
				cli.StringSliceFlag{Name: "ticket", Usage: "ticket line as TYPE:QUANTITY, e.g. ADULT:2"},
			},
			Action: purchaseAction,
		},
		{
			Name:  "token",
			Usage: "Prints a signed token for an account, for development",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "account", Usage: "account id"},
				cli.StringFlag{Name: "email", Usage: "account e-mail"},
				cli.StringFlag{Name: "secret", EnvVar: "JWT_SECRET", Usage: "signing secret"},
				cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "token lifetime"},
			},
			Action: tokenAction,
		},
	}
	return app
}

func StartServer(routes []*server.Route) {
	ctx := server.GetAppContext()
	ctx.CreateSQLConnection()
	ctx.CreateSMTPConnection()
	ctx.CreateMercadoPagoIntegration()
	ctx.CreateNewSessionS3()
	ctx.CreateTicketService()

	server.UpServer(routes, ctx)
}

func purchaseAction(c *cli.Context) error {
	var requests []tickets.TicketTypeRequest
	for _, spec := range c.StringSlice("ticket") {
		r, err := tickets.ParseTicketSpec(spec)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		requests = append(requests, r)
	}

	service := tickets.NewTicketService()
	total, err := service.PurchaseTickets(c.Int("account"), requests...)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	fmt.Fprintln(c.App.Writer, total)
	return nil
}

func tokenAction(c *cli.Context) error {
	secret := c.String("secret")
	if secret == "" {
		return cli.NewExitError("a signing secret is required, set JWT_SECRET or --secret", 1)
	}

	token, err := helpers.GenerateToken(models.InfoUser{
		ID:    c.Int("account"),
		Email: c.String("email"),
	}, secret, c.Duration("ttl"))
	if err != nil {
		return errors.Wrap(err, "failed signing token")
	}

	fmt.Fprintln(c.App.Writer, token)
	return nil
}
