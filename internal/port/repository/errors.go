package repository

import "errors"

var ErrNotFound = errors.New("entity not found")
