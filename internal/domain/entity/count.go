package entity

import "time"

// StockCount contagem física contra el saldo del ledger.
// Difference = Quantity - PreviousBalance; solo ajusta el ledger si AdjustStock es true.
// Las contagens son inmutables una vez creadas.
type StockCount struct {
	ID              string
	Product         ProductRef
	Responsible     *EmployeeRef
	Quantity        int64 // cantidad contada
	PreviousBalance int64 // saldoAnterior
	Difference      int64
	AdjustStock     bool
	Notes           string
	Timestamp       time.Time
}
