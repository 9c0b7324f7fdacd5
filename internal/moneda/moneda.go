// Package moneda concentra la conversión de divisas a MXN para despliegue.
// Los montos guardados conservan su moneda original; la conversión es solo
// para mostrar y para el resumen de entrega.
package moneda

import "github.com/shopspring/decimal"

// Tasas fijas hacia MXN por código de moneda.
var tasaMXN = map[string]decimal.Decimal{
	"1": decimal.NewFromInt(1),      // MXN
	"2": decimal.NewFromFloat(19.0), // USD
	"3": decimal.NewFromFloat(2.59), // YUAN
	"4": decimal.NewFromFloat(21.0), // EURO
	"5": decimal.NewFromFloat(26.0), // LIBRA
}

var Etiquetas = map[string]string{
	"1": "MXN",
	"2": "USD",
	"3": "YUAN",
	"4": "EURO",
	"5": "LIBRA ESTERLINA",
}

// ToMXN convierte un monto a MXN. Código desconocido = tasa 1.
func ToMXN(monto float64, codigo string) float64 {
	tasa, ok := tasaMXN[codigo]
	if !ok {
		tasa = decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(monto).Mul(tasa).InexactFloat64()
}

// Total calcula cantidad * unitario sin el ruido binario de float64
// (2.5 * 40 debe dar exactamente 100).
func Total(cantidad, unitario float64) float64 {
	return decimal.NewFromFloat(cantidad).Mul(decimal.NewFromFloat(unitario)).InexactFloat64()
}

// Etiqueta regresa el nombre corto de la moneda, MXN si no se conoce.
func Etiqueta(codigo string) string {
	if l, ok := Etiquetas[codigo]; ok {
		return l
	}
	return "MXN"
}
