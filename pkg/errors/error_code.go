package errors

// ErrorCode identifies a class of failure. Codes are grouped by range so a
// caller can switch on the hundreds digit when only the category matters.
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = 1

	// Validation (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeInvalidStdDev        ErrorCode = 113
	ErrCodeInvalidResolution    ErrorCode = 120
	ErrCodeInvalidMAType        ErrorCode = 121
	ErrCodeInvalidTriggerLag    ErrorCode = 123

	// Series and storage (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeMarkerNotAvailable    ErrorCode = 205
	ErrCodeIndexOutOfRange       ErrorCode = 206
	ErrCodeIndexRegression       ErrorCode = 207
	ErrCodeOutOfOrderBar         ErrorCode = 208

	// Indicator (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 302
	ErrCodeIndicatorDetached    ErrorCode = 303

	// Market data (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeWriteFailed           ErrorCode = 701
	ErrCodeParseFailed           ErrorCode = 702

	// Delivery (900-999)
	ErrCodeNotificationFailed ErrorCode = 900
	ErrCodeAnnotationFailed   ErrorCode = 901
)
