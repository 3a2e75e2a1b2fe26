package server

import "errors"

var (
	ErrAlreadyRunning = errors.New("inspector is already running")
	ErrNotRunning     = errors.New("inspector is not running")
)
