package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Mode is the advisor backend selected at construction time.
type Mode int

const (
	ModeMock Mode = iota
	ModePrimary
	ModeSecondary
)

func (m Mode) String() string {
	switch m {
	case ModePrimary:
		return "primary"
	case ModeSecondary:
		return "secondary"
	default:
		return "mock"
	}
}

// Analysis captures the structured output of the advisor.
type Analysis struct {
	// HiddenOptions keeps the order in which the model produced the suggestions.
	HiddenOptions []RawOption `json:"hidden_options"`

	// AvoidTips is free-text advice on avoiding price manipulation.
	AvoidTips string `json:"avoid_tips"`
}

// RawOption is one suggested alternative as returned by the model.
// Price and Save are display strings ("¥25,000", "35%").
type RawOption struct {
	Route string `json:"route"`
	Price string `json:"price"`
	Save  string `json:"save"`
	Tips  string `json:"tips,omitempty"`
}

// UnmarshalJSON tolerates numbers where strings are expected; models do not
// always quote prices.
func (o *RawOption) UnmarshalJSON(b []byte) error {
	var raw struct {
		Route json.RawMessage `json:"route"`
		Price json.RawMessage `json:"price"`
		Save  json.RawMessage `json:"save"`
		Tips  json.RawMessage `json:"tips"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	fields := []struct {
		dst *string
		src json.RawMessage
	}{
		{&o.Route, raw.Route},
		{&o.Price, raw.Price},
		{&o.Save, raw.Save},
		{&o.Tips, raw.Tips},
	}
	for _, f := range fields {
		v, err := jsonText(f.src)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

func jsonText(b json.RawMessage) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	if b[0] == '{' || b[0] == '[' {
		return "", fmt.Errorf("unexpected JSON value %s", b)
	}
	return string(b), nil
}

// FailureKind classifies why a live backend call did not produce an Analysis.
type FailureKind string

const (
	KindTransport FailureKind = "transport"
	KindStatus    FailureKind = "status"
	KindDecode    FailureKind = "decode"
)

// CallError is the typed failure of a live backend call.
type CallError struct {
	Backend    string
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *CallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s failure (status %d): %v", e.Backend, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s failure: %v", e.Backend, e.Kind, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}
