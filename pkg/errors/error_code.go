package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidOrder         ErrorCode = 102
	ErrCodeUnsupportedSide      ErrorCode = 103
	ErrCodeUnsupportedOrderType ErrorCode = 104
	ErrCodeInvalidQuantity      ErrorCode = 105
	ErrCodeMissingLimitPrice    ErrorCode = 106
	ErrCodeMissingStopPrice     ErrorCode = 107
	ErrCodeStopPriceDirection   ErrorCode = 108
	ErrCodeLimitPriceDirection  ErrorCode = 109

	// Exchange errors (200-299)
	ErrCodeConnectionFailed    ErrorCode = 200
	ErrCodeOrderFailed         ErrorCode = 201
	ErrCodeCancelFailed        ErrorCode = 202
	ErrCodeAccountFetchFailed  ErrorCode = 203
	ErrCodePriceFetchFailed    ErrorCode = 204
	ErrCodeOrderNotFound       ErrorCode = 205
	ErrCodePositionFetchFailed ErrorCode = 206
)
