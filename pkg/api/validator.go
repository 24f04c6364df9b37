package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Errors collects per-field validation failures for one request body.
type Errors struct {
	Fields map[string]string
}

func newErrors() *Errors {
	return &Errors{Fields: make(map[string]string)}
}

// Add records a failure for a field. The first message per field wins.
func (e *Errors) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// OK reports whether no failures were recorded.
func (e *Errors) OK() bool {
	return len(e.Fields) == 0
}

// Error implements the error interface with a stable field ordering.
func (e *Errors) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// rowPayload is the wire shape shared by create and update bodies.
// Every field is Optional so that present-vs-absent survives decoding.
type rowPayload struct {
	Title   Optional[*string]         `json:"title"`
	Tags    Optional[[]string]        `json:"tags"`
	Links   Optional[[]string]        `json:"links"`
	Image   Optional[*string]         `json:"image"`
	Content Optional[*string]         `json:"content"`
	Data    Optional[json.RawMessage] `json:"data"`
}

func decodePayload(body []byte) (rowPayload, *Errors) {
	var p rowPayload
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&p); err != nil {
		errs := newErrors()
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			errs.Add(typeErr.Field, "has the wrong type")
		} else {
			errs.Add("body", "must be a valid JSON object")
		}
		return p, errs
	}
	return p, nil
}

// ParseCreate validates a POST body and produces a defaulted NewRow:
// absent tags/links become empty slices and absent content becomes the
// empty string. Returns field-level errors on any constraint violation.
func ParseCreate(body []byte) (NewRow, *Errors) {
	p, errs := decodePayload(body)
	if errs != nil {
		return NewRow{}, errs
	}

	errs = newErrors()
	validatePayload(p, errs)
	if !errs.OK() {
		return NewRow{}, errs
	}

	row := NewRow{
		Title:   p.Title.Value,
		Tags:    []string{},
		Links:   []string{},
		Image:   p.Image.Value,
		Content: strPtr(""),
	}
	if p.Tags.Set {
		row.Tags = p.Tags.Value
	}
	if p.Links.Set {
		row.Links = p.Links.Value
	}
	if p.Content.Set {
		row.Content = p.Content.Value
	}
	if p.Data.Set && p.Data.Value != nil {
		row.Data = compactJSON(p.Data.Value)
	}
	return row, nil
}

// ParsePatch validates a PUT body. All fields are optional; present
// fields obey the same constraints as on create. An empty object is
// valid and yields an empty patch.
func ParsePatch(body []byte) (RowPatch, *Errors) {
	p, errs := decodePayload(body)
	if errs != nil {
		return RowPatch{}, errs
	}

	errs = newErrors()
	validatePayload(p, errs)
	if !errs.OK() {
		return RowPatch{}, errs
	}

	patch := RowPatch{
		Title:   p.Title,
		Tags:    p.Tags,
		Links:   p.Links,
		Image:   p.Image,
		Content: p.Content,
	}
	if p.Data.Set {
		patch.Data = Optional[json.RawMessage]{Set: true}
		if p.Data.Value != nil {
			patch.Data.Value = compactJSON(p.Data.Value)
		}
	}
	return patch, nil
}

// validatePayload applies the per-field constraints common to create
// and update bodies.
func validatePayload(p rowPayload, errs *Errors) {
	if p.Title.Set && p.Title.Value != nil && *p.Title.Value == "" {
		errs.Add("title", "must not be empty")
	}
	if p.Tags.Set && p.Tags.Value == nil {
		errs.Add("tags", "must be an array of strings")
	}
	if p.Links.Set {
		if p.Links.Value == nil {
			errs.Add("links", "must be an array of URLs")
		} else {
			for i, link := range p.Links.Value {
				if !isURL(link) {
					errs.Add("links", fmt.Sprintf("element %d is not a valid URL", i))
					break
				}
			}
		}
	}
	if p.Image.Set && p.Image.Value != nil && !isURL(*p.Image.Value) {
		errs.Add("image", "must be a valid URL")
	}
}

// isURL checks that a string is an absolute URL with a scheme and host.
func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// compactJSON re-serializes a decoded JSON value without insignificant
// whitespace so the stored text is canonical. The input already passed
// the decoder, so compaction cannot fail.
func compactJSON(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return json.RawMessage(buf.Bytes())
}

func strPtr(s string) *string {
	return &s
}
