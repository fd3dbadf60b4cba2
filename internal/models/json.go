package models

import "encoding/json"

// The value objects marshal as their underlying strings so a Product
// serializes flat. There is deliberately no UnmarshalJSON: deserialization
// would be a construction path that bypasses validation.

func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.value)
}

func (t Title) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}
