package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound          = errors.New("resource not found") // General not found
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrInterfaceNotFound = errors.New("interface not found")
	ErrItemNotFound      = errors.New("content item not found")

	// Authentication Errors
	ErrUnauthorized = errors.New("unauthorized") // Authentication required or failed
	ErrForbidden    = errors.New("forbidden")    // Authenticated, but lacks permission

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Content Document Errors
	ErrNotContentInterface = errors.New("interface does not hold a content document")
	ErrMalformedDocument   = errors.New("interface configuration document is malformed")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInvalidCursor  = errors.New("invalid cursor format")
)
