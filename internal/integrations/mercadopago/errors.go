package mercadopago

import "errors"

var (
	// ErrUnavailable is returned when the provider cannot be reached or
	// answers with a server error. Checkout creation surfaces it to the
	// caller; webhook processing logs it and drops the event.
	ErrUnavailable = errors.New("mercadopago: service unavailable")

	// ErrUnauthorized is returned on credential problems (bad access token)
	ErrUnauthorized = errors.New("mercadopago: unauthorized")

	// ErrPaymentNotFound is returned when the payment id is unknown to the
	// provider
	ErrPaymentNotFound = errors.New("mercadopago: payment not found")

	// ErrInvalidResponse is returned when the provider answer cannot be parsed
	ErrInvalidResponse = errors.New("mercadopago: invalid response")

	// ErrInternal covers request building failures
	ErrInternal = errors.New("mercadopago: internal error")
)
