package storage

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrUnknownFilterField = errors.New("unknown filter field")
)
