package dto

// CustomerRequest entrada para crear o reemplazar una klant (todos los campos).
type CustomerRequest struct {
	FirstName        string `json:"voornaam"`
	LastName         string `json:"achternaam"`
	Street           string `json:"straatnaam"`
	HouseNumber      string `json:"huisnummer"`
	PostalCode       string `json:"postcode"`
	City             string `json:"woonplaats"`
	Email            string `json:"email"`
	Phone            string `json:"telefoon"`
	CustomerNumber   string `json:"klantnummer"`
	CustomerType     string `json:"klanttype"`
	RegistrationDate *Date  `json:"registratiedatum,omitempty"`
}

// CustomerResponse salida de una klant.
type CustomerResponse struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"voornaam"`
	LastName         string `json:"achternaam"`
	Street           string `json:"straatnaam"`
	HouseNumber      string `json:"huisnummer"`
	PostalCode       string `json:"postcode"`
	City             string `json:"woonplaats"`
	Email            string `json:"email"`
	Phone            string `json:"telefoon"`
	CustomerNumber   string `json:"klantnummer"`
	CustomerType     string `json:"klanttype"`
	RegistrationDate Date   `json:"registratiedatum"`
}
