package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidBar           ErrorCode = 102
	ErrCodeInsufficientData     ErrorCode = 103
	ErrCodeInvalidStopLoss      ErrorCode = 104
	ErrCodeInvalidPeriod        ErrorCode = 105
	ErrCodeInvalidVersion       ErrorCode = 106
	ErrCodeOutOfOrderBar        ErrorCode = 107

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300

	// Strategy errors (400-499)
	ErrCodeStrategyNotFound          ErrorCode = 400
	ErrCodeStrategyAlreadyRegistered ErrorCode = 401
	ErrCodeStrategyConfigError       ErrorCode = 402
	ErrCodeStrategyRuntimeError      ErrorCode = 403

	// Trading errors (500-599)
	ErrCodeRiskRejected       ErrorCode = 500
	ErrCodePositionNotFound   ErrorCode = 501
	ErrCodeOrderFailed        ErrorCode = 502
	ErrCodeInvalidEngineState ErrorCode = 503

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError ErrorCode = 600
	ErrCodeBacktestNoStrategy  ErrorCode = 601
	ErrCodeReportWriteFailed   ErrorCode = 602

	// Live loop errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeFatalLoop             ErrorCode = 701
	ErrCodeLiquidationFailed     ErrorCode = 702

	// Trade log errors (800-899)
	ErrCodeTradeLogWriteFailed ErrorCode = 800
	ErrCodeTradeLogReadFailed  ErrorCode = 801
)
