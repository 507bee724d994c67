// Package identity: identidad de catálogo de un producto (código de barras) y
// normalización de colores.
//
// El código derivado es un EAN-13 de circulación interna (prefijo 2):
//
//	2 + HHHHHHHHHHH + dígito de control
//
// HHHHHHHHHHH son 11 dígitos: FNV-64a de "número␟color␟precio" (número sin espacios
// laterales, código de color y precio en unidades menores, en decimal) módulo 10^11.
// Las tres entradas completas entran en la clave; dos productos distintos sólo coinciden
// por colisión del hash, que la importación detecta y rechaza.
package identity

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

const (
	inStorePrefix = "2"
	keySeparator  = "\x1f"
	hashSpace     = 100_000_000_000
)

// DeriveBarcode calcula el código de barras de un producto sin código explícito.
// Función pura: mismas entradas, mismo resultado.
func DeriveBarcode(number string, colorCode int, price int64) string {
	key := strings.TrimSpace(number) + keySeparator +
		strconv.Itoa(colorCode) + keySeparator +
		strconv.FormatInt(price, 10)
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	body := inStorePrefix + fmt.Sprintf("%011d", h.Sum64()%hashSpace)
	return body + string(rune('0'+CheckDigit(body)))
}

// CheckDigit calcula el dígito de control EAN para un cuerpo de 12 dígitos.
func CheckDigit(body string) int {
	sum := 0
	for i, r := range body {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

// ValidEAN13 indica si s es un EAN-13 con dígito de control correcto.
func ValidEAN13(s string) bool {
	if len(s) != 13 || onlyDigits(s) != s {
		return false
	}
	return CheckDigit(s[:12]) == int(s[12]-'0')
}

// onlyDigits deja solo dígitos 0-9.
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
