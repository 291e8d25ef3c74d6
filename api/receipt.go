package api

import (
	"fmt"

	"bitbucket.org/parqueoasis/cinema-tickets/config"
	"bitbucket.org/parqueoasis/cinema-tickets/helpers"
	"bitbucket.org/parqueoasis/cinema-tickets/models"
	log "github.com/sirupsen/logrus"
)

func receiptEnabled(ctx *config.AppContext, user models.InfoUser) bool {
	return ctx.AwsS3 != nil || (ctx.AwsSMTP != nil && user.Email != "")
}

// issueReceipt renders the purchase receipt, keeps a copy in S3 and mails it
// to the account holder. Failures are only logged: the purchase is already
// committed.
func issueReceipt(ctx *config.AppContext, logger *log.Entry, purchase *models.Purchase, user models.InfoUser) {
	if logger == nil {
		logger = config.GetLogger()
	}
	logger = logger.WithField("reference", purchase.Reference)

	pdfBuffer, err := helpers.GeneratePurchaseReceiptPDF(ctx.Config.Mail.ReceiptTemplate, purchase, user)
	if err != nil {
		logger.WithError(err).Error("failed generating receipt")
		return
	}

	if ctx.AwsS3 != nil {
		key := fmt.Sprintf("%s/%s.pdf", ctx.Config.AwsS3.S3PathReceipt, purchase.Reference)
		url, err := helpers.AddFileToS3(ctx.AwsS3, ctx.Config.AwsS3.S3Bucket, key, pdfBuffer)
		if err != nil {
			logger.WithError(err).Error("failed uploading receipt")
		} else {
			logger.WithField("url", url).Info("receipt uploaded")
		}
	}

	if ctx.AwsSMTP == nil || user.Email == "" {
		return
	}

	ed := &helpers.EmailData{
		EmailTo:      user.Email,
		NameTo:       user.Firstname,
		EmailFrom:    ctx.Config.Mail.EmailFrom,
		NameFrom:     ctx.Config.Mail.NameFrom,
		Subject:      ctx.Config.Mail.PurchaseSuccess.Subject,
		TemplatePath: ctx.Config.Mail.PurchaseSuccessTemplatePath(),
		FileName:     ctx.Config.Mail.PurchaseSuccess.FileName,
		FileContent:  pdfBuffer.Bytes(),
		SMTP:         ctx.AwsSMTP,
	}

	err = ed.SendEmail(models.PurchaseReceiptHTML{
		Reference:     purchase.Reference,
		Name:          user.FullName(),
		AdultTickets:  purchase.AdultTickets,
		ChildTickets:  purchase.ChildTickets,
		InfantTickets: purchase.InfantTickets,
		TotalSeats:    purchase.TotalSeats,
		TotalAmount:   purchase.TotalAmount,
	})
	if err != nil {
		logger.WithError(err).Error("failed sending email")
		return
	}

	logger.Info("success sending email")
}
