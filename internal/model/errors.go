package model

import "fmt"

type NotFoundError struct {
	Kind string
	ID   ID
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}
