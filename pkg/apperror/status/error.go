package status

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges by domain:
//   0-999:     client/validation errors
//   1000-1999: Ask pipeline internal errors
//   2000-2999: Download internal errors

const (
	BadRequestBase    ErrorCode = 0
	InternalErrorBase ErrorCode = 1000
	DownloadErrorBase ErrorCode = 2000
)

// Client/validation errors start at 0
const (
	AskInvalidRequestBody ErrorCode = BadRequestBase + iota // 0
	AskMissingQuestion                                      // 1
	DownloadMissingKey                                      // 2
)

// Ask pipeline internal errors start at 1000
const (
	AskInternal                ErrorCode = InternalErrorBase + iota // 1000
	AskEmbeddingNotConfigured                                       // 1001
	AskGenerationNotConfigured                                      // 1002
)

// Download internal errors start at 2000
const (
	DownloadPresignFailed ErrorCode = DownloadErrorBase + iota // 2000
)

// Deprecated: prefer domain-specific internal codes above
const (
	ErrorCodeInternal ErrorCode = 9000
)

// CodedError represents an error with an associated ErrorCode
type CodedError interface {
	error
	ErrorCode() ErrorCode
}

type codedError struct {
	code ErrorCode
	err  error
}

func (e codedError) Error() string        { return e.err.Error() }
func (e codedError) Unwrap() error        { return e.err }
func (e codedError) ErrorCode() ErrorCode { return e.code }

// New creates a new CodedError with the given code and underlying error
func New(code ErrorCode, err error) error {
	if err == nil {
		return nil
	}
	return codedError{code: code, err: err}
}
