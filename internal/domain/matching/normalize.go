// Package matching contiene las reglas para comparar registros de fuentes
// distintas: normalización de razones sociales, coincidencia contra clientes
// conocidos y la clave compuesta de entrega.
package matching

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Sufijos societarios y su forma canónica. El orden importa: SAS antes que SA.
// La puntuación que cierra el sufijo ("S.A.S.,", "SAS..") se absorbe.
var legalSuffixes = []struct {
	re        *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`(^|[\s,]+)S\s*\.?\s*A\s*\.?\s*S\s*[.,;]*(\s|$)`), "SAS"},
	{regexp.MustCompile(`(^|[\s,]+)S\s*\.?\s*A\s*[.,;]*(\s|$)`), "SA"},
	{regexp.MustCompile(`(^|[\s,]+)LTDA\s*[.,;]*(\s|$)`), "LTDA"},
}

// NormalizeClientName devuelve la forma canónica de una razón social:
// mayúsculas, espacios internos colapsados y sufijos societarios unificados
// ("S.A.S.", "SAS.", "S. A. S" → "SAS").
//
// Toda comparación o búsqueda por nombre de cliente debe pasar por aquí.
func NormalizeClientName(raw string) string {
	s := norm.NFC.String(raw)
	s = cases.Upper(language.Spanish).String(s)
	s = collapseSpaces(s)
	if s == "" {
		return ""
	}
	for _, suf := range legalSuffixes {
		s = suf.re.ReplaceAllString(s, " "+suf.canonical+"$2")
	}
	return collapseSpaces(s)
}

// Tokens divide un nombre ya normalizado en palabras.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
