package todoclient

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// ID identifies a todo. The store assigns it and the client treats it as
// opaque text.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid todo id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid todo id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Flag is a completion flag. Stores may encode it as a boolean or as 0/1.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1":
		*f = true
	case "false", "0":
		*f = false
	default:
		return fmt.Errorf("invalid completion flag %s", data)
	}
	return nil
}

type Todo struct {
	ID        ID     `json:"id"`
	Task      string `json:"task"`
	Completed Flag   `json:"completed"`
}
