package core

import "errors"

var (
	ErrHelp = errors.New("")

	ErrDBConn        = errors.New("db connection failure")
	ErrOrderNotFound = errors.New("order not found")

	ErrFieldIsEmpty     = errors.New("field is empty")
	ErrItemsNotSequence = errors.New("items must be a JSON array")
)
