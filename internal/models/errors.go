package models

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidKey    = errors.New("invalid day or event id")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidOrder  = errors.New("invalid order")
	ErrNoDays        = errors.New("no day buckets to average")
	ErrCaptureFailed = errors.New("capture failed")
	ErrQueueClosed   = errors.New("queue closed")
	ErrQueueFull     = errors.New("queue full")
)
