package protocol

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"qtb/internal/domain"
)

func TestEncode_NewlineTerminated(t *testing.T) {
	msg := NewMessage(TypeSessionStart, SessionStartData{TestCount: 3, StartTime: 1000.5})

	data, err := Encode(msg)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("record should be newline-terminated")
	}
	if bytes.Count(data, []byte("\n")) != 1 {
		t.Error("record should contain exactly one newline")
	}
}

func TestEncode_EnvelopeFields(t *testing.T) {
	msg := NewMessage(TypeTestStart, TestStartData{ID: "test-pepe-001", Description: "Simple test"})

	data, err := Encode(msg)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	env, err := Decode(bytes.TrimSpace(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if env.Type != TypeTestStart {
		t.Errorf("expected type %s, got %s", TypeTestStart, env.Type)
	}
	if env.Timestamp == 0 {
		t.Error("timestamp should be set")
	}

	var payload TestStartData
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("payload decode failed: %v", err)
	}
	if payload.ID != "test-pepe-001" {
		t.Errorf("expected id test-pepe-001, got %s", payload.ID)
	}
	if payload.Description != "Simple test" {
		t.Errorf("unexpected description %q", payload.Description)
	}
}

func TestEncode_LegacyFieldNames(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		expected []string
	}{
		{
			name:     "session start uses test_count",
			msg:      NewMessage(TypeSessionStart, SessionStartData{TestCount: 2}),
			expected: []string{`"test_count":2`, `"start_time"`},
		},
		{
			name: "outputs use cpp_output and mojo_output",
			msg: NewMessage(TypeTestOutputs, TestOutputsData{
				ID:         "t1",
				CPPOutput:  "NPV: 95.24",
				MojoOutput: "NPV: 95.24",
			}),
			expected: []string{`"cpp_output":"NPV: 95.24"`, `"mojo_output":"NPV: 95.24"`},
		},
		{
			name: "result omits empty reason and diff",
			msg: NewMessage(TypeTestResult, TestResultData{
				ID:     "t1",
				Status: domain.StatusPass,
			}),
			expected: []string{`"status":"PASS"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.msg)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			for _, want := range tt.expected {
				if !strings.Contains(string(data), want) {
					t.Errorf("expected record to contain %s, got %s", want, string(data))
				}
			}
		})
	}
}

func TestEncode_PassResultHasNoDiffField(t *testing.T) {
	msg := NewMessage(TypeTestResult, TestResultData{ID: "t1", Status: domain.StatusPass})
	data, err := Encode(msg)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if strings.Contains(string(data), `"diff"`) {
		t.Error("pass result should not carry a diff field")
	}
	if strings.Contains(string(data), `"reason"`) {
		t.Error("pass result should not carry a reason field")
	}
}

func TestEncode_NoHTMLEscaping(t *testing.T) {
	msg := NewMessage(TypeTestOutputs, TestOutputsData{
		ID:         "t1",
		CPPOutput:  "a < b && c > d",
		MojoOutput: "a < b && c > d",
	})
	data, err := Encode(msg)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if strings.Contains(string(data), `<`) {
		t.Error("HTML escaping should be disabled")
	}
}

func TestDecode_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "not json", line: "TESTS 3"},
		{name: "missing type", line: `{"timestamp": 1.0, "data": {}}`},
		{name: "empty", line: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.line)); err == nil {
				t.Errorf("expected error for %q", tt.line)
			}
		})
	}
}

func TestEncode_OrderedInputs(t *testing.T) {
	msg := NewMessage(TypeTestInputs, TestInputsData{
		ID: "t1",
		Inputs: domain.Inputs{
			{Name: "Cash flow value", Value: "100.00"},
			{Name: "Interest rate", Value: "0.05"},
		},
	})
	data, err := Encode(msg)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	s := string(data)
	first := strings.Index(s, "Cash flow value")
	second := strings.Index(s, "Interest rate")
	if first == -1 || second == -1 || first > second {
		t.Errorf("inputs should keep declaration order, got %s", s)
	}
}
