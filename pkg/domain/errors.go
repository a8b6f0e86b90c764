package domain

import "errors"

// ErrTitleRequired is returned when a note is submitted without a title.
var ErrTitleRequired = errors.New("note title is required")

// ErrEmptyUsername is returned when a login is attempted with a blank username.
var ErrEmptyUsername = errors.New("username is required")
