package http

import "github.com/cyberhorsey/errors"

var (
	ErrNoHTTPFramework = errors.Validation.NewWithKeyAndDetail(
		"ERR_NO_HTTP_ENGINE",
		"HTTP framework required",
	)
	ErrNoDeriver = errors.Validation.NewWithKeyAndDetail(
		"ERR_NO_DERIVER",
		"Deposit deriver required",
	)
	ErrInvalidTxHash = errors.Validation.NewWithKeyAndDetail(
		"ERR_INVALID_TX_HASH",
		"Transaction hash must be 32 hex encoded bytes",
	)
	ErrEmptyRawTransaction = errors.Validation.NewWithKeyAndDetail(
		"ERR_EMPTY_RAW_TRANSACTION",
		"Raw deposit transaction required",
	)
	ErrNoQueue = errors.Validation.NewWithKeyAndDetail(
		"ERR_NO_QUEUE",
		"Derivation queue not configured",
	)
	ErrNoRepository = errors.Validation.NewWithKeyAndDetail(
		"ERR_NO_REPOSITORY",
		"Deposit database not configured",
	)
	ErrInvalidAddress = errors.Validation.NewWithKeyAndDetail(
		"ERR_INVALID_ADDRESS",
		"From must be a hex encoded address",
	)
)
