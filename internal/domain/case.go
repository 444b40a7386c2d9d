package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// NoDescription is substituted when a test case carries no description.
const NoDescription = "No description"

// Case is the single in-flight test case. Cases are processed strictly
// sequentially; a Case is created at setup time and discarded once its
// result event has been emitted.
type Case struct {
	ID              string
	Description     string
	Inputs          Inputs
	ReferenceOutput string // raw text from the C++ reference run
	CandidateOutput string // raw text from the Mojo candidate run
	StartTime       time.Time
}

// NewCase creates a Case, substituting the default description if absent.
func NewCase(id, description string) *Case {
	if description == "" {
		description = NoDescription
	}
	return &Case{
		ID:          id,
		Description: description,
		StartTime:   time.Now(),
	}
}

// Input is a single named test input value.
type Input struct {
	Name  string
	Value string
}

// Inputs is an ordered input mapping. Order is preserved as declared in the
// suite file, which a plain map would not do.
type Inputs []Input

// MarshalJSON encodes the inputs as a JSON object in declaration order.
func (in Inputs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, input := range in {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(input.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(input.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into inputs, keeping key order.
func (in *Inputs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("inputs: expected object, got %v", tok)
	}

	var result Inputs
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("inputs: expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("inputs: value for %q: %w", key, err)
		}
		result = append(result, Input{Name: key, Value: value})
	}
	*in = result
	return nil
}

// UnmarshalYAML decodes a YAML mapping into inputs, keeping key order.
// Scalar values of any YAML type are captured as their literal text.
func (in *Inputs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("inputs: expected mapping at line %d", node.Line)
	}
	var result Inputs
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("inputs: value for %q must be a scalar (line %d)", key.Value, value.Line)
		}
		result = append(result, Input{Name: key.Value, Value: value.Value})
	}
	*in = result
	return nil
}
