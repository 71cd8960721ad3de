package vintagestory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
)

// MissingFieldError reports a required key that was absent or null in an
// upstream record. It is always wrapped in a PARSE_ERROR.
type MissingFieldError struct {
	Record string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Record, e.Field)
}

var (
	modSummaryRequired = []string{
		"modid", "assetid", "downloads", "follows", "trendingpoints", "comments",
		"name", "modidstrs", "author", "side", "type", "tags", "lastreleased",
	}
	modRequired = []string{
		"modid", "assetid", "name", "text", "author", "downloads", "follows",
		"trendingpoints", "comments", "side", "type", "created", "lastreleased",
		"lastmodified", "tags", "releases", "screenshots",
	}
	releaseRequired    = []string{"releaseid", "mainfile", "downloads", "tags", "modversion", "created"}
	screenshotRequired = []string{"fileid", "mainfile", "filename", "thumbnailfilename", "created"}
	tagRequired        = []string{"tagid", "name", "color"}
	authorRequired     = []string{"userid"}
	commentRequired    = []string{"commentid", "assetid", "userid", "text", "created", "lastmodified"}
)

// requireFields checks that data is a JSON object carrying every field
// with a non-null value.
func requireFields(data []byte, record string, fields []string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%s: %w", record, err)
	}
	if obj == nil {
		return fmt.Errorf("%s: record is null", record)
	}
	for _, f := range fields {
		if raw, ok := obj[f]; !ok || isNull(raw) {
			return &MissingFieldError{Record: record, Field: f}
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (m *ModSummary) UnmarshalJSON(data []byte) error {
	type plain ModSummary
	if err := requireFields(data, "mod summary", modSummaryRequired); err != nil {
		return err
	}
	return json.Unmarshal(data, (*plain)(m))
}

func (m *Mod) UnmarshalJSON(data []byte) error {
	type plain Mod
	if err := requireFields(data, "mod", modRequired); err != nil {
		return err
	}
	return json.Unmarshal(data, (*plain)(m))
}

// UnmarshalJSON accepts a string, number or null "filename"; only a string
// is kept.
func (r *Release) UnmarshalJSON(data []byte) error {
	type plain Release
	if err := requireFields(data, "release", releaseRequired); err != nil {
		return err
	}
	aux := struct {
		*plain
		Filename json.RawMessage `json:"filename"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Filename = nil
	if len(aux.Filename) == 0 || isNull(aux.Filename) {
		return nil
	}
	var name string
	if json.Unmarshal(aux.Filename, &name) == nil {
		r.Filename = &name
	}
	return nil
}

func (s *Screenshot) UnmarshalJSON(data []byte) error {
	type plain Screenshot
	if err := requireFields(data, "screenshot", screenshotRequired); err != nil {
		return err
	}
	return json.Unmarshal(data, (*plain)(s))
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	type plain Tag
	if err := requireFields(data, "tag", tagRequired); err != nil {
		return err
	}
	return json.Unmarshal(data, (*plain)(t))
}

func (a *Author) UnmarshalJSON(data []byte) error {
	type plain Author
	if err := requireFields(data, "author", authorRequired); err != nil {
		return err
	}
	return json.Unmarshal(data, (*plain)(a))
}

func (g *GameVersion) UnmarshalJSON(data []byte) error {
	type plain GameVersion
	if err := requireFields(data, "game version", tagRequired); err != nil {
		return err
	}
	return json.Unmarshal(data, (*plain)(g))
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	type plain Comment
	if err := requireFields(data, "comment", commentRequired); err != nil {
		return err
	}
	return json.Unmarshal(data, (*plain)(c))
}

// envelope is the outer object of every upstream response:
// {"statuscode": "200", "<key>": <payload>}.
type envelope map[string]json.RawMessage

// statusCode reads "statuscode", which upstream sends as a string but which
// is accepted as a number too.
func (e envelope) statusCode() (int, error) {
	raw, ok := e["statuscode"]
	if !ok || isNull(raw) {
		return 0, &MissingFieldError{Record: "response", Field: "statuscode"}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.Atoi(s)
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("response: statuscode: %w", err)
	}
	return n, nil
}

// decode checks the envelope status and decodes the payload under key into v.
// what names the resource in error messages (e.g. "mod 42").
func (e envelope) decode(key, what string, v any) error {
	status, err := e.statusCode()
	if err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "%s", what)
	}
	switch {
	case status == 404:
		return errors.New(errors.ErrCodeNotFound, "%s not found", what)
	case status < 200 || status >= 300:
		return errors.New(errors.ErrCodeNetwork, "%s: upstream status %d", what, status)
	}

	raw, ok := e[key]
	if !ok || isNull(raw) {
		return errors.Wrap(errors.ErrCodeParse, &MissingFieldError{Record: "response", Field: key}, "%s", what)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "%s", what)
	}
	return nil
}
