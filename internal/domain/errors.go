package domain

import "errors"

// Errores centinela que las implementaciones de persistencia mapean
// desde los errores nativos del driver.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
