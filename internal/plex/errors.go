// internal/plex/errors.go
package plex

import "errors"

var (
	// ErrUnauthorized indicates the Plex token was rejected.
	ErrUnauthorized = errors.New("plex token rejected")
)
