package backup

import "errors"

var (
	ErrBackupInFlight    = errors.New("backup already in progress")
	ErrInvalidBundle     = errors.New("invalid backup bundle")
	ErrUnsupportedBundle = errors.New("unsupported backup bundle")
	ErrSlotNotFound      = errors.New("backup slot not found")
)
