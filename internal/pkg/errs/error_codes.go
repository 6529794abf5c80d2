/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Messaging and Subscription Errors
const (
	// ErrMessageSendFailed indicates the message could not be persisted.
	ErrMessageSendFailed = 2101

	// ErrMessageFetchFailed indicates the message history could not be read.
	ErrMessageFetchFailed = 2102

	// ErrSubscribeFailed indicates the push subscription could not be stored.
	ErrSubscribeFailed = 2201
)

// 3xxx: Authentication Errors
const (
	// ErrInvalidCredentials indicates the username/password pair matched neither configured account.
	ErrInvalidCredentials = 3001
)

// 4xxx: Upload Errors
const (
	// ErrFileSizeTooLarge indicates the uploaded file exceeded the size limit.
	ErrFileSizeTooLarge = 4001

	// ErrFileTypeInvalid indicates the uploaded file is not an accepted image type.
	ErrFileTypeInvalid = 4002

	// ErrFileStorageFailed indicates the upload to object storage failed.
	ErrFileStorageFailed = 4003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
