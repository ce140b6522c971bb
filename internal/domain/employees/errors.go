package employees

import "errors"

var (
	ErrNotFound           = errors.New("employee not found")
	ErrDuplicateMatricule = errors.New("matricule already in use")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrPositionNotFound   = errors.New("position not found")
	ErrDuplicateName      = errors.New("name already in use")
)
