package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an identifier assigned by the Qik Office API.
//
// The client never generates or interprets identifiers; they are echoed back
// to the server verbatim. Some deployments return numeric ids, so ID accepts
// both JSON strings and JSON numbers and always marshals as a string.
type ID string

func (id ID) String() string { return string(id) }
func (id ID) IsZero() bool    { return id == "" }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}
