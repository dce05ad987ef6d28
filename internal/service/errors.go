package service

import "errors"

// Sentinel errors returned by the services. Handlers translate these into
// HTTP status codes; everything else surfaces as an internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrReaderNil          = errors.New("reader is nil")
	ErrFilenameRequired   = errors.New("filename is required")
	ErrFileEmpty          = errors.New("file is empty")
	ErrFileTooLarge       = errors.New("file exceeds maximum upload size")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)
