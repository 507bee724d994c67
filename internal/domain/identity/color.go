package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var upper = cases.Upper(language.Und)

// NormalizeColor deja el texto de color en su forma canónica para comparar identidades:
// NFKC, ancho normal (los caracteres de ancho completo pasan a ASCII), mayúsculas
// y espacios internos colapsados.
func NormalizeColor(s string) string {
	s = width.Fold.String(norm.NFKC.String(s))
	return upper.String(strings.Join(strings.Fields(s), " "))
}
