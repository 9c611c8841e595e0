package service

import (
	"strings"
	"unicode/utf8"
)

// minTokenLen descarta palabras de una sola letra antes del lookup de rasgos.
const minTokenLen = 2

// Tokenize separa el texto por espacios en blanco, pasa cada palabra a
// minúsculas y descarta los tokens demasiado cortos. Conserva el orden de
// aparición: el plegado de descripciones depende de ese orden.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, word := range fields {
		if utf8.RuneCountInString(word) < minTokenLen {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
