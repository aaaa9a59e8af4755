package features

import "errors"

var (
	// ErrMissingColumn is returned when a required column is absent.
	// The wrapped message names the column.
	ErrMissingColumn = errors.New("features: coluna ausente")

	// ErrNonNumeric is returned when a feature cell cannot be read as a number.
	ErrNonNumeric = errors.New("features: valor não numérico")

	// ErrInvalidTarget is returned when a target cell is missing or not 0/1.
	ErrInvalidTarget = errors.New("features: alvo inválido")

	// ErrUnknownColumn is returned when a vocabulary has no entry for a column.
	ErrUnknownColumn = errors.New("features: coluna fora do vocabulário")
)
