// Package storagekey calcula la clave relativa de un documento dentro del DocumentStore:
//
//	project_<id>/<bestandsnaam>            documento suelto
//	project_<id>/<mapnaam>/<bestandsnaam>  documento dentro de una carpeta
//
// Los nombres se normalizan a NFC para que el mismo nombre subido desde macOS (NFD)
// y desde otros sistemas produzca la misma clave.
package storagekey

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// ProjectDir devuelve el prefijo de todos los objetos de un project.
func ProjectDir(projectID int64) string {
	return fmt.Sprintf("project_%d", projectID)
}

// For construye la clave de un documento. folder vacío = documento suelto.
func For(projectID int64, folder, filename string) (string, error) {
	name, err := CleanSegment("bestandsnaam", filename)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(folder) == "" {
		return path.Join(ProjectDir(projectID), name), nil
	}
	dir, err := CleanSegment("mapnaam", folder)
	if err != nil {
		return "", err
	}
	return path.Join(ProjectDir(projectID), dir, name), nil
}

// Within normaliza una clave recibida del cliente y comprueba que apunta a un fichero
// dentro de project_<id>/, suelto o en una única map.
func Within(field string, projectID int64, key string) (string, error) {
	outside := &domain.FieldError{Field: field, Message: "Pad ligt buiten de projectmap."}
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, "/") || strings.ContainsRune(key, '\\') {
		return "", outside
	}
	parts := strings.Split(key, "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != ProjectDir(projectID) {
		return "", outside
	}
	for i := 1; i < len(parts); i++ {
		seg, err := CleanSegment(field, parts[i])
		if err != nil {
			return "", outside
		}
		parts[i] = seg
	}
	return path.Join(parts...), nil
}

// CleanSegment normaliza un único segmento de ruta y rechaza separadores y "..".
func CleanSegment(field, s string) (string, error) {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) || strings.ContainsRune(s, 0) {
		return "", &domain.FieldError{Field: field, Message: "Ongeldige naam."}
	}
	return s, nil
}
