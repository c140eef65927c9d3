package inventory

import "github.com/shopspring/decimal"

// AverageCost calcula el costo promedio ponderado (CUMP) tras una entrada
// (servicio de dominio, puro, sin efectos):
//
//	NuevoCosto = (StockActual·CostoActual + CantEntrada·PrecioEntrada) / (StockActual + CantEntrada)
//
// redondeado a 2 decimales (mitad hacia arriba). Si no hay stock previo que
// ponderar, la primera entrada fija el costo: el resultado es exactamente
// precioEntrada, sin pasar por la división.
//
// cantEntrada debe ser > 0; una entrada de cantidad cero se rechaza antes de
// llegar aquí.
func AverageCost(stockActual int64, costoActual decimal.Decimal, cantEntrada int64, precioEntrada decimal.Decimal) decimal.Decimal {
	if stockActual <= 0 {
		return precioEntrada
	}
	prev := decimal.NewFromInt(stockActual)
	in := decimal.NewFromInt(cantEntrada)
	num := prev.Mul(costoActual).Add(in.Mul(precioEntrada))
	// Round de shopspring es mitad-lejos-de-cero, que para valores no
	// negativos equivale a mitad-hacia-arriba.
	return num.Div(prev.Add(in)).Round(2)
}
