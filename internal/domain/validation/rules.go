// Package validation contiene las reglas de formato de klanten y los parsers de los
// enumerados que llegan como texto libre desde la capa HTTP.
package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

var (
	phonePattern          = regexp.MustCompile(`^(\+31|0)[1-9][0-9]{8}$`)
	postalCodePattern     = regexp.MustCompile(`^[0-9]{4} ?[A-Z]{2}$`)
	customerNumberPattern = regexp.MustCompile(`^KLT-[0-9]{4}$`)
)

// ValidatePhone acepta 0612345678 o +31612345678.
func ValidatePhone(s string) error {
	if !phonePattern.MatchString(s) {
		return &domain.FieldError{Field: "telefoon", Message: "Ongeldig telefoonnummer. Gebruik bijv. 0612345678 of +31612345678."}
	}
	return nil
}

// ValidatePostalCode acepta el formato neerlandés "1234 AB" o "1234AB".
func ValidatePostalCode(s string) error {
	if !postalCodePattern.MatchString(s) {
		return &domain.FieldError{Field: "postcode", Message: "Postcode moet het Nederlandse formaat hebben, zoals '1234 AB'."}
	}
	return nil
}

// ValidateCustomerNumber acepta KLT- seguido de exactamente 4 dígitos.
func ValidateCustomerNumber(s string) error {
	if !customerNumberPattern.MatchString(s) {
		return &domain.FieldError{Field: "klantnummer", Message: "Klantnummer moet het formaat 'KLT-0001' hebben."}
	}
	return nil
}

// ValidateEmail valida la sintaxis de la dirección.
func ValidateEmail(s string) error {
	if !govalidator.IsEmail(s) {
		return &domain.FieldError{Field: "email", Message: "Ongeldig e-mailadres."}
	}
	return nil
}

// ValidateColor acepta un color HEX (#RGB o #RRGGBB).
func ValidateColor(s string) error {
	if !strings.HasPrefix(s, "#") || !govalidator.IsHexcolor(s) {
		return &domain.FieldError{Field: "kleur", Message: "Kleur moet een HEX-kleurcode zijn, zoals '#FF0000'."}
	}
	return nil
}

// ValidateCustomer aplica todas las reglas y devuelve todos los fallos unidos con
// ErrInvalidFormat. Orden fijo: obligatorios, teléfono, postcode, klantnummer, email, tipo.
func ValidateCustomer(c *entity.Customer) error {
	var errs []error
	if strings.TrimSpace(c.FirstName) == "" {
		errs = append(errs, required("voornaam"))
	}
	if strings.TrimSpace(c.LastName) == "" {
		errs = append(errs, required("achternaam"))
	}
	if err := ValidatePhone(c.Phone); err != nil {
		errs = append(errs, err)
	}
	if err := ValidatePostalCode(c.PostalCode); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateCustomerNumber(c.CustomerNumber); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateEmail(c.Email); err != nil {
		errs = append(errs, err)
	}
	if !c.CustomerType.Valid() {
		errs = append(errs, &domain.FieldError{Field: "klanttype", Message: "Klanttype moet particulier, zakelijk of leverancier zijn."})
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ParseProjectStatus convierte texto libre al enumerado de Project.
func ParseProjectStatus(s string) (entity.ProjectStatus, error) {
	status := entity.ProjectStatus(s)
	if !status.Valid() {
		return "", &domain.FieldError{Field: "status", Message: "Status moet ingepland, bezig of afgerond zijn."}
	}
	return status, nil
}

// ParseTaskStatus convierte texto libre al enumerado de Task.
func ParseTaskStatus(s string) (entity.TaskStatus, error) {
	status := entity.TaskStatus(s)
	if !status.Valid() {
		return "", &domain.FieldError{Field: "status", Message: "Status moet open, bezig of afgerond zijn."}
	}
	return status, nil
}

// Required devuelve un FieldError si el valor está vacío.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return required(field)
	}
	return nil
}

func required(field string) error {
	return &domain.FieldError{Field: field, Message: "Veld is verplicht."}
}
