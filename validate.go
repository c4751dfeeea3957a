package loqui

import "github.com/loqui/loqui-go/internal/types"

func requireID(id, field string) error {
	return types.ValidateIDPresent(id, field)
}
