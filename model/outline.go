package model

import (
	"bytes"
	"encoding/json"
)

// OutlineEntry is a single detected heading in the final outline.
type OutlineEntry struct {
	Text  string `json:"text"`
	Level string `json:"level"` // "H1", "H2" or "H3"
	Page  int    `json:"page"`  // 1-based
}

// OutlineDocument is the final output artifact for one input PDF:
// a document title plus the ordered heading outline.
type OutlineDocument struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}

// NewOutlineDocument returns an empty document. The outline slice is
// allocated so an empty result serializes as [] rather than null.
func NewOutlineDocument() OutlineDocument {
	return OutlineDocument{Outline: []OutlineEntry{}}
}

// MarshalJSON serializes the document, guaranteeing a non-null outline array.
func (d OutlineDocument) MarshalJSON() ([]byte, error) {
	type alias OutlineDocument
	out := alias(d)
	if out.Outline == nil {
		out.Outline = []OutlineEntry{}
	}
	return json.Marshal(out)
}

// ToJSON renders the document as JSON. When indent is true the output is
// pretty-printed with two-space indentation.
func (d OutlineDocument) ToJSON(indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
