package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Ref is a reference to another backend document. The backend sends either
// the bare id or the populated document; both decode into a Ref.
type Ref struct {
	ID    string `json:"_id"`
	Title string `json:"title,omitempty"`
	Name  string `json:"name,omitempty"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

// Label is the human readable part of the reference.
func (r Ref) Label() string {
	if r.Title != "" {
		return r.Title
	}
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

func itoa(n int) string { return strconv.Itoa(n) }
