package kam

import "errors"

var (
	ErrKAMNotFound = errors.New("kam.repository: kam not found")
	ErrNameTaken   = errors.New("kam.repository: kam name already exists")
	ErrBuildQuery  = errors.New("kam.repository: failed to build query")
	ErrExecQuery   = errors.New("kam.repository: failed to execute query")
	ErrScanRow     = errors.New("kam.repository: failed to scan row")
)
