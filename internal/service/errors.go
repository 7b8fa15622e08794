package service

import "errors"

var (
	ErrValidation   = errors.New("invalid request") // 400
	ErrConflict     = errors.New("already exists")  // 400
	ErrNotFound     = errors.New("not found")       // 404
	ErrUnauthorized = errors.New("unauthorized")    // 401
	ErrUpdateFailed = errors.New("update failed")   // 500, write failed mid-sequence
)
