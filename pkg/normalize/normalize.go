// Package normalize normaliza texto para busca insensível a acentos em
// nomes em português. Neutro: usado tanto pela camada de aplicação quanto
// pelos adaptadores de persistência (coluna name_normalized).
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Search remove diacríticos e baixa a caixa ("Periférico" -> "periferico").
func Search(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
