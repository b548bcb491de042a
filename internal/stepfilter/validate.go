package stepfilter

import (
	"fmt"
	"strings"
	"unicode"
)

const MaxLength = 512

var allowedCalls = map[string]bool{"len": true, "abs": true, "lower": true, "upper": true}

// Validate rejects filters that are too long or call anything beyond a
// few pure builtins.
func Validate(src string) error {
	src = strings.TrimSpace(src)
	if src == "" {
		return fmt.Errorf("%w: empty expression", ErrInvalidFilter)
	}
	if len(src) > MaxLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidFilter, MaxLength)
	}

	illegalChars := []rune{'{', '}', ';', '@', '#', '$', '\\', '`'}
	for _, ch := range illegalChars {
		if strings.ContainsRune(src, ch) {
			return fmt.Errorf("%w: illegal character %q", ErrInvalidFilter, ch)
		}
	}

	for i := 0; i < len(src); i++ {
		if src[i] != '(' {
			continue
		}
		j := i - 1
		for j >= 0 && unicode.IsSpace(rune(src[j])) {
			j--
		}
		if j < 0 || !(unicode.IsLetter(rune(src[j])) || unicode.IsDigit(rune(src[j])) || src[j] == '_') {
			continue
		}
		k := j
		for k >= 0 && (unicode.IsLetter(rune(src[k])) || unicode.IsDigit(rune(src[k])) || src[k] == '_') {
			k--
		}
		ident := src[k+1 : j+1]
		if isKeyword(ident) || allowedCalls[ident] {
			continue
		}
		return fmt.Errorf("%w: function calls are not allowed (found %q(...))", ErrInvalidFilter, ident)
	}

	return nil
}

func isKeyword(ident string) bool {
	switch ident {
	case "and", "or", "not", "in", "matches", "contains", "startsWith", "endsWith":
		return true
	}
	return false
}
