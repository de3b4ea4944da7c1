package service

import "errors"

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidContent     = errors.New("content_json is not a lexical document")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidAction      = errors.New("unsupported action")
)
