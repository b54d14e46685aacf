package subway

import "errors"

var (
	// ErrNoDatabase indicates no database was configured.
	ErrNoDatabase = errors.New("subway: no database configured")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("subway: client is closed")
)
