package repository

import "errors"

// ErrVersionConflict is returned when a conditional write finds that another
// writer changed the row since it was read.
var ErrVersionConflict = errors.New("version conflict")
