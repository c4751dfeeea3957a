package types

import "fmt"

// ValidateIDPresent returns an error naming the field when id is empty.
func ValidateIDPresent(id, field string) error {
	if id == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}
