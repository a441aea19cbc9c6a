package confirm_payment

import (
	"context"

	confirmPayment "github.com/psicoagenda/booking-service/internal/usecase/confirm_payment"
)

// ConfirmPaymentUseCase is the operation behind this handler
type ConfirmPaymentUseCase interface {
	Execute(ctx context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
