package helpers

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"text/template"
	"time"

	"bitbucket.org/parqueoasis/cinema-tickets/models"
	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

type RequestPdf struct {
	bodies []string
}

func (r *RequestPdf) ParseTemplate(templateFileName string, data interface{}) error {
	t, err := template.ParseFiles(templateFileName)
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		return err
	}
	r.bodies = append(r.bodies, buf.String())
	return nil
}

func (r *RequestPdf) HTML() string {
	return strings.Join(r.bodies, ConstHTMLNewPage)
}

const (
	ConstHTMLNewPage = `
	<div class="new-page"></div>
	`
)

func (r *RequestPdf) GeneratePDF() (*bytes.Buffer, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, errors.Wrap(err, "wkhtmltopdf not available")
	}

	pdfg.AddPage(wkhtmltopdf.NewPageReader(strings.NewReader(r.HTML())))

	err = pdfg.Create()
	if err != nil {
		return nil, err
	}

	return pdfg.Buffer(), nil
}

// NewPurchaseReceipt renders the receipt page for a purchase, with a QR code
// of its reference.
func NewPurchaseReceipt(templateFileName string, purchase *models.Purchase, holder models.InfoUser, issued time.Time) (*RequestPdf, error) {
	r := RequestPdf{}

	img, err := qrcode.New(purchase.Reference, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	base64, err := EncodeImage(img.Image(256))
	if err != nil {
		return nil, err
	}

	if err := r.ParseTemplate(templateFileName, models.PurchaseReceiptHTML{
		Reference:     purchase.Reference,
		Name:          RemoveAccents(holder.FullName()),
		Date:          issued.Format("02-01-2006 15:04"),
		AdultTickets:  purchase.AdultTickets,
		ChildTickets:  purchase.ChildTickets,
		InfantTickets: purchase.InfantTickets,
		TotalSeats:    purchase.TotalSeats,
		TotalAmount:   purchase.TotalAmount,
		Image:         base64,
	}); err != nil {
		return nil, err
	}

	return &r, nil
}

func GeneratePurchaseReceiptPDF(templateFileName string, purchase *models.Purchase, holder models.InfoUser) (*bytes.Buffer, error) {
	r, err := NewPurchaseReceipt(templateFileName, purchase, holder, time.Now())
	if err != nil {
		return nil, err
	}

	return r.GeneratePDF()
}

func EncodeImage(m image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, m); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
