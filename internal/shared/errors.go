package shared

import "errors"

var (

	// common errors
	ErrorNotFound = errors.New("not found")

	// auth-specific errors
	ErrorInvalidToken            = errors.New("invalid token")
	ErrorInvalidAuthheaderFormat = errors.New("invalid auth header format")
	ErrorInvalidLoginPassword    = errors.New("invalid login/password")

	// sync-specific errors
	ErrorPassInProgress = errors.New("sync pass already in progress")
	ErrorNoUsers        = errors.New("no user ids configured")
)
