package entity

import "time"

// CustomerType clasifica a la klant.
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "particulier"
	CustomerTypeBusiness   CustomerType = "zakelijk"
	CustomerTypeSupplier   CustomerType = "leverancier"
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t CustomerType) Valid() bool {
	switch t {
	case CustomerTypeIndividual, CustomerTypeBusiness, CustomerTypeSupplier:
		return true
	}
	return false
}

// Customer representa una klant. Email y CustomerNumber son únicos entre todas las klanten.
type Customer struct {
	ID               int64
	FirstName        string
	LastName         string
	Street           string
	HouseNumber      string
	PostalCode       string
	City             string
	Email            string
	Phone            string
	CustomerNumber   string // KLT-0001
	CustomerType     CustomerType
	RegistrationDate time.Time
}
