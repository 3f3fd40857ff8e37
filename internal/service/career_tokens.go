package service

import (
	"strings"
	"unicode"
)

// tokenSet es el conjunto de palabras completas (minúsculas) de las respuestas.
type tokenSet map[string]struct{}

// extractTokens parte el texto en cualquier caracter que no sea letra.
// Ej: "candidate, SQL" -> {candidate, sql}; "data" dentro de "candidate" no cuenta.
func extractTokens(text string) tokenSet {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	set := make(tokenSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func (s tokenSet) has(token string) bool {
	_, ok := s[token]
	return ok
}

func (s tokenSet) hasAny(tokens []string) bool {
	for _, t := range tokens {
		if s.has(t) {
			return true
		}
	}
	return false
}
