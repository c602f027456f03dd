package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("niet gevonden")
	ErrInvalidInput  = errors.New("ongeldige invoer")
	ErrInvalidFormat = errors.New("ongeldig formaat")
	ErrConflict      = errors.New("conflict met bestaande gegevens")
	ErrIO            = errors.New("fout bij opslag van bestand")
)

// FieldError identifica el campo que no cumple una regla de formato.
// errors.Is(err, ErrInvalidFormat) es true para cualquier FieldError.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// Is permite comparar contra ErrInvalidFormat.
func (e *FieldError) Is(target error) bool { return target == ErrInvalidFormat }

// ConflictError describe una violación de unicidad o de referencia.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Is permite comparar contra ErrConflict.
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Conflictos conocidos de Klant.
var (
	ErrEmailInUse          = &ConflictError{Field: "email", Message: "E-mail is al in gebruik"}
	ErrCustomerNumberInUse = &ConflictError{Field: "klantnummer", Message: "Klantnummer is al in gebruik"}
	ErrCustomerHasProjects = &ConflictError{Field: "klant_id", Message: "Klant heeft nog projecten"}
)

// Conflictos de documentmappen y documenten.
var (
	ErrFolderNameInUse = &ConflictError{Field: "naam", Message: "Map met deze naam bestaat al in dit project"}
	ErrPathInOtherMap  = &ConflictError{Field: "bestandsnaam", Message: "Bestand met deze naam hoort bij een andere map"}
)

// FieldErrors extrae todos los FieldError de un error (posiblemente unido con errors.Join).
func FieldErrors(err error) []*FieldError {
	var out []*FieldError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if fe, ok := e.(*FieldError); ok {
			out = append(out, fe)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
