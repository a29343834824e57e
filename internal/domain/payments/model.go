package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCreditCard Method = "Cartão de Crédito"
	MethodDebitCard  Method = "Cartão de Débito"
	MethodCash       Method = "Dinheiro"
	MethodPix        Method = "Pix"
	MethodTransfer   Method = "Transferência"
)

var Methods = []string{
	string(MethodCreditCard),
	string(MethodDebitCard),
	string(MethodCash),
	string(MethodPix),
	string(MethodTransfer),
}

type Status string

const (
	StatusPending  Status = "Pendente"
	StatusPaid     Status = "Pago"
	StatusCanceled Status = "Cancelado"
	StatusRefunded Status = "Reembolsado"
)

var Statuses = []string{
	string(StatusPending),
	string(StatusPaid),
	string(StatusCanceled),
	string(StatusRefunded),
}

// Payment: como máximo uno por consulta.
type Payment struct {
	ID            int64
	AppointmentID int64
	Amount        decimal.Decimal // DECIMAL(10,2)
	PaidAt        time.Time
	Method        Method
	Status        Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
