package db

import (
	"github.com/google/uuid"
	shortuuid "github.com/lithammer/shortuuid/v3"
)

func GenerateReservationUUID() string {
	return uuid.New().String()
}

func GeneratePaymentReference() string {
	return shortuuid.New()
}
