// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Kind discriminates the shapes an LLM result can take.
type Kind string

const (
	// KindNone marks an absent LLM result.
	KindNone       Kind = ""
	KindText       Kind = "text"
	KindList       Kind = "list"
	KindStructured Kind = "structured"
)

// Section is one titled part of a structured LLM result.
type Section struct {
	Title    string `json:"title" yaml:"title"`
	Content  string `json:"content" yaml:"content"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// LLMResult is the LLM summary attached to a search response. Exactly the
// fields of its Kind are meaningful: Value for text, Items for list,
// Summary and Sections for structured.
//
// On decode a bare string, array or object is accepted and resolved to the
// matching kind; an explicit "kind" must agree with the fields present.
type LLMResult struct {
	Kind     Kind
	Value    string
	Items    []string
	Summary  string
	Sections []Section
}

// Text builds a text result.
func Text(value string) LLMResult { return LLMResult{Kind: KindText, Value: value} }

// List builds a list result.
func List(items ...string) LLMResult { return LLMResult{Kind: KindList, Items: items} }

// Structured builds a structured result.
func Structured(summary string, sections ...Section) LLMResult {
	return LLMResult{Kind: KindStructured, Summary: summary, Sections: sections}
}

// llmWire is the tagged object form shared by JSON and YAML.
type llmWire struct {
	Kind     Kind      `json:"kind,omitempty" yaml:"kind,omitempty"`
	Value    string    `json:"value,omitempty" yaml:"value,omitempty"`
	Items    []string  `json:"items,omitempty" yaml:"items,omitempty"`
	Summary  string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	Sections []Section `json:"sections,omitempty" yaml:"sections,omitempty"`
}

func (w llmWire) resolve() (LLMResult, error) {
	kind := w.Kind
	if kind == KindNone {
		switch {
		case w.Summary != "" || len(w.Sections) > 0:
			kind = KindStructured
		case len(w.Items) > 0:
			kind = KindList
		case w.Value != "":
			kind = KindText
		default:
			return LLMResult{}, nil
		}
	}

	switch kind {
	case KindText:
		if len(w.Items) > 0 || w.Summary != "" || len(w.Sections) > 0 {
			return LLMResult{}, fmt.Errorf("text llm result carries list or structured fields")
		}
		return Text(w.Value), nil
	case KindList:
		if w.Value != "" || w.Summary != "" || len(w.Sections) > 0 {
			return LLMResult{}, fmt.Errorf("list llm result carries text or structured fields")
		}
		return List(w.Items...), nil
	case KindStructured:
		if w.Value != "" || len(w.Items) > 0 {
			return LLMResult{}, fmt.Errorf("structured llm result carries text or list fields")
		}
		return Structured(w.Summary, w.Sections...), nil
	default:
		return LLMResult{}, fmt.Errorf("unknown llm result kind %q", kind)
	}
}

func (r LLMResult) wire() llmWire {
	return llmWire{Kind: r.Kind, Value: r.Value, Items: r.Items, Summary: r.Summary, Sections: r.Sections}
}

// UnmarshalJSON resolves a string, array or tagged object.
func (r *LLMResult) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = LLMResult{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding text llm result: %w", err)
		}
		*r = Text(s)
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("decoding list llm result: %w", err)
		}
		*r = List(items...)
	case '{':
		var w llmWire
		if err := json.Unmarshal(data, &w); err != nil {
			return fmt.Errorf("decoding structured llm result: %w", err)
		}
		res, err := w.resolve()
		if err != nil {
			return err
		}
		*r = res
	default:
		return fmt.Errorf("llm result must be a string, array or object, got %s", truncate(string(data), 20))
	}
	return nil
}

// MarshalJSON writes the tagged object form, or null when absent.
func (r LLMResult) MarshalJSON() ([]byte, error) {
	if r.Kind == KindNone {
		return []byte("null"), nil
	}
	return json.Marshal(r.wire())
}

// UnmarshalYAML resolves a scalar, sequence or tagged mapping.
func (r *LLMResult) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*r = LLMResult{}
			return nil
		}
		*r = Text(node.Value)
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("decoding list llm result: %w", err)
		}
		*r = List(items...)
	case yaml.MappingNode:
		var w llmWire
		if err := node.Decode(&w); err != nil {
			return fmt.Errorf("decoding structured llm result: %w", err)
		}
		res, err := w.resolve()
		if err != nil {
			return err
		}
		*r = res
	default:
		return fmt.Errorf("llm result must be a string, list or mapping (line %d)", node.Line)
	}
	return nil
}

// MarshalYAML writes the tagged mapping form, or null when absent.
func (r LLMResult) MarshalYAML() (any, error) {
	if r.Kind == KindNone {
		return nil, nil
	}
	return r.wire(), nil
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
