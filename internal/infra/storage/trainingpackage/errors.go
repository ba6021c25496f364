package trainingpackage

import "errors"

var (
	ErrPackageNotFound = errors.New("package.repository: package not found")
	ErrNameTaken       = errors.New("package.repository: package name already exists")
	ErrBuildQuery      = errors.New("package.repository: failed to build query")
	ErrExecQuery       = errors.New("package.repository: failed to execute query")
	ErrScanRow         = errors.New("package.repository: failed to scan row")
)
