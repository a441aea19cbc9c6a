package initiate_checkout

import (
	"context"

	initiateCheckout "github.com/psicoagenda/booking-service/internal/usecase/initiate_checkout"
)

// InitiateCheckoutUseCase is the operation behind this handler
type InitiateCheckoutUseCase interface {
	Execute(ctx context.Context, req *initiateCheckout.Request) (*initiateCheckout.Response, error)
}

// Logger is the logging surface this handler needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
