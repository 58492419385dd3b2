package kilometrikisa

import "errors"

var (
	// InvalidCredentials is returned when the login form rejects the
	// username/password pair.
	InvalidCredentials = errors.New("the provided username or password was incorrect")
	// NotAuthenticated is returned when an authenticated page comes
	// back with the anonymous sign-up prompt instead of the expected
	// content.
	NotAuthenticated = errors.New("the session is not authenticated")
	// TokenNotFound is returned when the login form carries no csrf
	// token in the expected markers.
	TokenNotFound = errors.New("could not find login token")
	// ContestIdNotFound is returned when a contest teams page carries
	// no json-search id in its first script block. Not retryable, it
	// indicates a markup change.
	ContestIdNotFound = errors.New("contest id not found")
	// StructureMismatch is returned when an expected markup element is
	// absent, signaling a site-format change.
	StructureMismatch = errors.New("page structure mismatch")
	// InvalidNumber is returned when a numeric field fails to parse
	// after normalization.
	InvalidNumber = errors.New("invalid number")
)
