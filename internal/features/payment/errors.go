package payment

import (
	"errors"
)

var (
	ErrPaymentNotFound      = errors.New("payment record not found")
	ErrInvalidMethod        = errors.New("payment method must be Credit Card or UPI")
	ErrCardFieldsRequired   = errors.New("card number, card holder name, expiry date, and CVV are required for Credit Card payments")
	ErrCardFieldsNotAllowed = errors.New("card details should not be provided for UPI payments")
	ErrUPIRequired          = errors.New("UPI ID is required for UPI payments")
	ErrInvalidUPI           = errors.New("invalid UPI ID. Expected a handle like name@bank")
	ErrUPINotAllowed        = errors.New("UPI ID should not be provided for Credit Card payments")
	ErrInvalidPlanDuration  = errors.New("invalid premium plan duration")
)
