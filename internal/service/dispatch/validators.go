package dispatch

import "github.com/google/uuid"

func isValidJobID(id uuid.UUID) bool {
	return id != uuid.Nil
}

func isValidCourierID(id int64) bool {
	return id > 0
}
