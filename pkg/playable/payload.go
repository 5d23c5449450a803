package playable

import "japjap-server/pkg/deck"

// PayloadIn is a message read from a websocket
type PayloadIn struct {
	Action         string         `json:"action"`
	Subject        string         `json:"subject"`
	Cards          []*deck.Card   `json:"cards"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context is echoed on the reply so the client can match it up
	Context string `json:"context"`
}

// AdditionalData holds the free-form arguments of a message
// Numbers arrive as float64 once decoded from JSON
type AdditionalData map[string]interface{}

// GetString returns the value at key if it is a string
func (a AdditionalData) GetString(key string) (string, bool) {
	v, ok := a[key].(string)
	return v, ok
}

// GetInt returns the value at key as an int
func (a AdditionalData) GetInt(key string) (int, bool) {
	n, ok := a.number(key)
	return int(n), ok
}

// GetInt64 returns the value at key as an int64
func (a AdditionalData) GetInt64(key string) (int64, bool) {
	n, ok := a.number(key)
	return int64(n), ok
}

// GetBool returns the value at key if it is a bool
func (a AdditionalData) GetBool(key string) (bool, bool) {
	v, ok := a[key].(bool)
	return v, ok
}

func (a AdditionalData) number(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
