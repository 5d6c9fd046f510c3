package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument   = 1000
	ErrCodeInvalidJSON       = 1001
	ErrCodeRequestTooLarge   = 1002
	ErrCodeInvalidQuery      = 1003
	ErrCodeInvalidID         = 1004
	ErrCodeMissingRequired   = 1005
	ErrCodeInvalidMediaKind  = 1006
	ErrCodeInvalidImportMode = 1007

	// Domain state (2xxx)
	ErrCodeEntryNotFound  = 2001
	ErrCodeAvatarNotFound = 2002

	// Limits (3xxx)
	ErrCodeResourceExhausted = 3001

	// Internal/system (4xxx)
	ErrCodeInternal           = 4001
	ErrCodeStoreFailure       = 4002
	ErrCodeStorageUnavailable = 4003
	ErrCodeUpstreamFailed     = 4004
	ErrCodeGeneratorDisabled  = 4005
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 404:
		return ErrCodeEntryNotFound
	case 429:
		return ErrCodeResourceExhausted
	case 500:
		return ErrCodeInternal
	case 502:
		return ErrCodeUpstreamFailed
	default:
		return 0
	}
}
