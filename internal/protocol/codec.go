package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Message is the self-describing envelope for every event on the wire.
// Records are newline-delimited so a line-oriented reader can resynchronize.
type Message struct {
	Type      string  `json:"type"`
	Timestamp float64 `json:"timestamp"`
	Data      any     `json:"data"`
}

// Envelope is the read-side counterpart with the payload left raw. Only the
// debug listener decodes events; the bridge channel is write-only.
type Envelope struct {
	Type      string          `json:"type"`
	Timestamp float64         `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// NewMessage wraps a payload with its type tag and the current wall clock.
func NewMessage(msgType string, data any) Message {
	return Message{
		Type:      msgType,
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
		Data:      data,
	}
}

// Encode serializes a message as one newline-terminated JSON record.
func Encode(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(msg); err != nil {
		return nil, fmt.Errorf("encode %s event: %w", msg.Type, err)
	}
	return buf.Bytes(), nil
}

// Decode parses one record into an envelope, payload undecoded.
func Decode(line []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode event: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode event: missing type field")
	}
	return env, nil
}
