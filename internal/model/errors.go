package model

import "errors"

var (
	ErrInvalid          = errors.New("invalid argument")
	ErrDuplicateName    = errors.New("name already in use")
	ErrFolderNotFound   = errors.New("folder not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrInternal         = errors.New("internal error")
)
