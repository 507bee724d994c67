package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// cleanCell quita artefactos comunes de hojas exportadas: espacios, prefijo de fórmula (="...")
// y comillas envolventes.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// parseScaled interpreta texto decimal y lo reescala a entero redondeando a la unidad más
// cercana: "12.5"×10 = 125 y "0.28999999999999998"×100 = 29 (valores crudos de Excel).
// Acepta símbolos de moneda, separadores de miles y negativos contables "(1.50)".
// Texto no numérico vale 0.
func parseScaled(s string, scale int64) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "", "￥", "", ",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	if negative {
		d = d.Neg()
	}
	if scale <= 0 {
		scale = 1
	}
	return d.Mul(decimal.NewFromInt(scale)).Round(0).IntPart()
}
