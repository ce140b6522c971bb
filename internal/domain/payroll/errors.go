package payroll

import "errors"

var (
	ErrPaymentNotFound = errors.New("salary payment not found")
	ErrNegativeAmount  = errors.New("payment amount must not be negative")
	ErrInvalidPeriod   = errors.New("month must be 1-12 and year positive")
)
