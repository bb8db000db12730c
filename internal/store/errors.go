package store

import "errors"

var (
	ErrNotConnected     = errors.New("store: not connected")
	ErrAlreadyConnected = errors.New("store: already connected")
	ErrConnectFailed    = errors.New("store: unable to connect")
	ErrInvalidDocument  = errors.New("store: value is not a document")
)
