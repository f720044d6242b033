package service

import "errors"

// Sentinel errors shared by the services. Handlers map these to HTTP
// statuses; everything else is a 500.
var (
	ErrNotFound           = errors.New("recipe not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrForbidden          = errors.New("you can only modify your own recipes")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidServings    = errors.New("invalid serving size")
	ErrInvalidScore       = errors.New("invalid rating")
	ErrUnsupportedImage   = errors.New("unsupported image type")
)
