// Package search normaliza texto para búsquedas sin distinción de mayúsculas ni acentos.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold quita acentos y aplica case folding: "Feijão Preto" -> "feijao preto".
// Los transformers no son seguros para uso concurrente, por eso se crean por llamada.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// Match true si term (ya normalizado o no) aparece en alguno de los campos.
// Término vacío coincide con todo.
func Match(term string, fields ...string) bool {
	term = Fold(term)
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), term) {
			return true
		}
	}
	return false
}
