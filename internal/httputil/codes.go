package httputil

// Machine-readable error codes returned alongside error messages.
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeInternalError      = "INTERNAL_ERROR"

	// Request gate
	CodeMissingAuth  = "MISSING_AUTH"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenRevoked = "TOKEN_REVOKED"

	// Auth
	CodeMissingField          = "MISSING_FIELD"
	CodeInvalidEmailFormat    = "INVALID_EMAIL_FORMAT"
	CodeEmailAlreadyExists    = "EMAIL_ALREADY_EXISTS"
	CodeUserNameAlreadyExists = "USERNAME_ALREADY_EXISTS"
	CodeDuplicateIdentity     = "DUPLICATE_IDENTITY"
	CodeWeakPassword          = "WEAK_PASSWORD"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"

	// Content
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidImageURL = "INVALID_IMAGE_URL"
)
