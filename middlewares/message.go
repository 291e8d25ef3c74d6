package middlewares

import "bitbucket.org/parqueoasis/cinema-tickets/tickets"

var Responses = struct {
	FailedValidations    *NewRM
	InternalServerError  *NewRM
	Unauthorized         *NewRM
	InvalidAccount       *NewRM
	InvalidTicketRequest *NewRM
	InvalidCategory      *NewRM
	InvalidQuantity      *NewRM
	NoAdultTicket        *NewRM
	PurchaseFailed       *NewRM
}{
	FailedValidations: &NewRM{
		Language.English: "Failed field validations",
		Language.Spanish: "Las validaciones de los campos fallaron",
	},
	InternalServerError: &NewRM{
		Language.English: "Internal server error",
		Language.Spanish: "Problemas con el servidor",
	},
	Unauthorized: &NewRM{
		Language.English: "Unauthorized",
		Language.Spanish: "No autorizado",
	},
	InvalidAccount: &NewRM{
		Language.English: "Invalid account",
		Language.Spanish: "La cuenta no es válida",
	},
	InvalidTicketRequest: &NewRM{
		Language.English: "At most 20 tickets can be requested per ticket type line",
		Language.Spanish: "Se pueden pedir como máximo 20 entradas por línea",
	},
	InvalidCategory: &NewRM{
		Language.English: "Ticket type must be ADULT, CHILD or INFANT",
		Language.Spanish: "El tipo de entrada debe ser ADULT, CHILD o INFANT",
	},
	InvalidQuantity: &NewRM{
		Language.English: "Ticket quantity must be a positive whole number",
		Language.Spanish: "La cantidad de entradas debe ser un número entero positivo",
	},
	NoAdultTicket: &NewRM{
		Language.English: "Child and infant tickets need at least one adult ticket",
		Language.Spanish: "Las entradas de niño e infante requieren al menos una entrada de adulto",
	},
	PurchaseFailed: &NewRM{
		Language.English: "The purchase could not be completed",
		Language.Spanish: "No se pudo completar la compra",
	},
}

type NewRM map[string]string

var Language = struct {
	English string
	Spanish string
}{
	English: "en",
	Spanish: "es",
}

var LanguageMap = map[string]string{
	Language.Spanish: "Spanish",
	Language.English: "English",
}

// ReasonResponses maps a purchase rule violation to its message.
var ReasonResponses = map[tickets.Reason]*NewRM{
	tickets.ReasonInvalidAccount:       Responses.InvalidAccount,
	tickets.ReasonInvalidTicketRequest: Responses.InvalidTicketRequest,
	tickets.ReasonInvalidCategory:      Responses.InvalidCategory,
	tickets.ReasonInvalidQuantity:      Responses.InvalidQuantity,
	tickets.ReasonNoAdultTicket:        Responses.NoAdultTicket,
}
