package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("already exists")
	ErrUnauthenticated = errors.New("invalid credentials")
	ErrNotFound        = errors.New("not found")
)

// Karya submission errors, all matching ErrValidation.
var (
	ErrTitleRequired   = fmt.Errorf("%w: title is required", ErrValidation)
	ErrProdiRequired   = fmt.Errorf("%w: prodi is required", ErrValidation)
	ErrFileRequired    = fmt.Errorf("%w: file is required for upload type file", ErrValidation)
	ErrYoutubeRequired = fmt.Errorf("%w: youtube link is required for upload type youtube", ErrValidation)
	ErrUploadType      = fmt.Errorf("%w: upload type must be file or youtube", ErrValidation)
)
