// Package inventory implementa el ledger de stock: la única puerta de
// mutación de las filas (sucursal, producto). Los orquestadores de compra,
// venta y orden llaman estas funciones con repositorios atados a SU
// transacción; el bloqueo de fila (SELECT ... FOR UPDATE) garantiza que dos
// descuentos concurrentes sobre la misma fila no puedan ver ambos saldo
// suficiente y dejar stock negativo.
package inventory

import (
	"fmt"
	"time"

	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// Increase suma qty al stock de (sucursal, producto), creando la fila en
// cero si no existe. El incremento es un delta atómico en SQL: dos compras
// concurrentes que estrenen la misma fila acumulan ambas cantidades. Solo
// falla con cantidad inválida o error de infraestructura.
func Increase(stockRepo repository.StockRepository, branchID, productID string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	return stockRepo.Add(branchID, productID, qty)
}

// DecreaseExact descuenta qty del stock de la sucursal exacta. La fila debe
// existir con Quantity >= qty; una fila ausente cuenta como stock cero.
// Falla con domain.ErrInsufficientStock sin mutar nada.
func DecreaseExact(stockRepo repository.StockRepository, branchID, productID string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(branchID, productID)
	if err != nil {
		return err
	}
	if stock.Quantity < qty {
		return fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, productID)
	}
	stock.Quantity -= qty
	stock.UpdatedAt = time.Now()
	return stockRepo.Upsert(stock)
}

// DecreasePooled descuenta qty de ALGUNA sucursal con saldo suficiente para
// el producto (fulfillment agrupado de la tienda pública). La elección es
// determinista: menor branch_id. La línea nunca se divide entre sucursales;
// si ninguna fila alcanza por sí sola, falla con domain.ErrInsufficientStock.
// Devuelve la sucursal elegida.
func DecreasePooled(stockRepo repository.StockRepository, productID string, qty int64) (string, error) {
	if qty <= 0 {
		return "", domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetAnyForUpdate(productID, qty)
	if err != nil {
		return "", err
	}
	if stock == nil {
		// Alguien compró el último justo antes: se reporta como stock
		// insuficiente, no como error genérico.
		return "", fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, productID)
	}
	stock.Quantity -= qty
	stock.UpdatedAt = time.Now()
	if err := stockRepo.Upsert(stock); err != nil {
		return "", err
	}
	return stock.BranchID, nil
}
