package mercadopago

import (
	"bytes"
	"encoding/json"
	"fmt"
	io "io/ioutil"
	"net/http"
	"strconv"
	"time"

	shortuuid "github.com/lithammer/shortuuid/v3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	mpContentType = `application/json`
	mpItemTitle   = `Cinema tickets`

	defaultTimeout = 10 * time.Second
)

var defaultClient = &http.Client{Timeout: defaultTimeout}

// PaymentRecorder keeps the preferences opened for each purchase.
type PaymentRecorder interface {
	RecordCheckout(accountID int, totalAmount int, preferenceID string, reference string) error
}

type MP struct {
	BaseURL         string
	Token           string
	PathPreferences string
	NotificationURL string
	SuccessURL      string
	FailureURL      string
	Client          *http.Client
	Recorder        PaymentRecorder
}

type MPCreatePreferenceRequest struct {
	NotificationURL   string               `json:"notification_url,omitempty"`
	ExternalReference string               `json:"external_reference"`
	Items             []MPPreferenceItem   `json:"items"`
	BackUrls          MPPreferenceBackUrls `json:"back_urls"`
	Payer             MPPreferencePayer    `json:"payer"`
}

type MPPreferenceBackUrls struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
}

type MPPreferencePayer struct {
	ID string `json:"id"`
}

type MPPreferenceItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int    `json:"unit_price"`
}

type MPCreatePreferenceResponse struct {
	ID                string `json:"id"`
	InitPoint         string `json:"init_point"`
	ExternalReference string `json:"external_reference"`
}

// MakePayment opens a checkout preference charging totalAmount to the account
// under a fresh reference.
func (mp *MP) MakePayment(accountID int, totalAmount int) error {
	return mp.NewCheckout(shortuuid.New()).MakePayment(accountID, totalAmount)
}

// Checkout pays one purchase. Its preference carries the purchase reference
// as external reference, and InitPoint is where the buyer pays it.
type Checkout struct {
	mp         *MP
	reference  string
	preference *MPCreatePreferenceResponse
}

func (mp *MP) NewCheckout(reference string) *Checkout {
	return &Checkout{mp: mp, reference: reference}
}

func (c *Checkout) MakePayment(accountID int, totalAmount int) error {
	response, err := c.mp.MPCreatePreference(accountID, totalAmount, c.reference)
	if err != nil {
		return err
	}

	if c.mp.Recorder != nil {
		err = c.mp.Recorder.RecordCheckout(accountID, totalAmount, response.ID, response.ExternalReference)
		if err != nil {
			return errors.Wrapf(err, "failed recording preference %s", response.ID)
		}
	}
	c.preference = response

	log.WithFields(log.Fields{
		"account_id":         accountID,
		"preference_id":      response.ID,
		"external_reference": response.ExternalReference,
		"init_point":         response.InitPoint,
	}).Info("mercadopago preference created")
	return nil
}

// InitPoint is empty until MakePayment succeeds.
func (c *Checkout) InitPoint() string {
	if c.preference == nil {
		return ""
	}
	return c.preference.InitPoint
}

func (mp *MP) MPCreatePreference(accountID int, totalAmount int, externalReference string) (*MPCreatePreferenceResponse, error) {
	requestBody := MPCreatePreferenceRequest{
		NotificationURL:   mp.NotificationURL,
		ExternalReference: externalReference,
		BackUrls: MPPreferenceBackUrls{
			Success: mp.SuccessURL,
			Failure: mp.FailureURL,
		},
		Payer: MPPreferencePayer{
			ID: strconv.Itoa(accountID),
		},
		Items: []MPPreferenceItem{
			{
				ID:          strconv.Itoa(accountID),
				Title:       mpItemTitle,
				Description: fmt.Sprintf("Tickets for account %d", accountID),
				Quantity:    1,
				UnitPrice:   totalAmount,
			},
		},
	}

	responseBody, err := mp.post(fmt.Sprintf("%s%s?access_token=%s", mp.BaseURL, mp.PathPreferences, mp.Token), &requestBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating preference in Mercado Pago")
	}

	var response MPCreatePreferenceResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return nil, errors.Wrap(err, "failed decoding Mercado Pago preference")
	}

	if response.ExternalReference == "" {
		response.ExternalReference = requestBody.ExternalReference
	}

	return &response, nil
}

func (mp *MP) client() *http.Client {
	if mp.Client != nil {
		return mp.Client
	}
	return defaultClient
}

func (mp *MP) post(url string, body interface{}) ([]byte, error) {
	requestBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	response, err := mp.client().Post(url, mpContentType, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusCreated && response.StatusCode != http.StatusOK {
		return nil, errors.Errorf("bad response %d", response.StatusCode)
	}

	return responseBody, nil
}
