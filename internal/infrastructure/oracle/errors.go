package oracle

import "errors"

var (
	ErrConnectionFailed = errors.New("connection to price stream failed")
	ErrStreamClosed     = errors.New("price stream closed")
	ErrUnknownToken     = errors.New("no oracle mapping for token")
	ErrUnknownProvider  = errors.New("unknown oracle provider")
)
