package linklist

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MarshalLinks encodes links as a compact JSON array, the persisted layout.
func MarshalLinks(links []*Link) ([]byte, error) {
	return json.Marshal(encodable(links))
}

// MarshalLinksIndent encodes links as an indented JSON array followed by a
// newline. The output is accepted by UnmarshalLinks.
func MarshalLinksIndent(links []*Link) ([]byte, error) {
	data, err := json.MarshalIndent(encodable(links), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// encodable guarantees an array root and array-valued tags.
func encodable(links []*Link) []*Link {
	out := make([]*Link, 0, len(links))
	for _, l := range links {
		if l.Tags == nil {
			l = l.Clone()
		}
		out = append(out, l)
	}
	return out
}

// UnmarshalLinks decodes untrusted JSON into links. The root must be an
// array of objects, each with non-empty string "title" (or the legacy
// "name") and "url" fields. Optional fields must have the right type when
// present: "tags" an array of strings, "category" and "favicon" strings,
// "id" an integer. Unknown fields are ignored.
//
// Any violation returns EFORMAT. Decoded links are not normalized.
func UnmarshalLinks(data []byte) ([]*Link, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, Errorf(EFORMAT, "expected a JSON array of links: %v", err)
	}
	if elems == nil {
		return nil, Errorf(EFORMAT, "expected a JSON array of links, got null")
	}

	links := make([]*Link, 0, len(elems))
	for i, elem := range elems {
		link, err := unmarshalLink(elem)
		if err != nil {
			return nil, Errorf(EFORMAT, "record %d: %s", i+1, ErrorMessage(err))
		}
		links = append(links, link)
	}
	return links, nil
}

func unmarshalLink(data json.RawMessage) (*Link, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, Errorf(EFORMAT, "expected an object")
	}

	var link Link
	title, ok, err := stringField(fields, "title")
	if err != nil {
		return nil, err
	}
	if !ok {
		if title, _, err = stringField(fields, "name"); err != nil {
			return nil, err
		}
	}
	link.Title = title

	if link.URL, _, err = stringField(fields, "url"); err != nil {
		return nil, err
	}
	if link.Category, _, err = stringField(fields, "category"); err != nil {
		return nil, err
	}
	if link.Favicon, _, err = stringField(fields, "favicon"); err != nil {
		return nil, err
	}

	link.Tags = []string{}
	if raw, ok := fields["tags"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &link.Tags); err != nil {
			return nil, Errorf(EFORMAT, `"tags" must be an array of strings`)
		}
		if link.Tags == nil {
			link.Tags = []string{}
		}
	}

	if raw, ok := fields["id"]; ok && !isNull(raw) {
		var n json.Number
		if raw[0] == '"' || json.Unmarshal(raw, &n) != nil {
			return nil, Errorf(EFORMAT, `"id" must be a number`)
		}
		if link.ID, err = n.Int64(); err != nil {
			return nil, Errorf(EFORMAT, `"id" must be an integer`)
		}
	}

	if strings.TrimSpace(link.Title) == "" {
		return nil, Errorf(EFORMAT, `"title" is required`)
	}
	if strings.TrimSpace(link.URL) == "" {
		return nil, Errorf(EFORMAT, `"url" is required`)
	}
	return &link, nil
}

// stringField returns the string stored under key and whether it was set.
// A JSON null counts as unset.
func stringField(fields map[string]json.RawMessage, key string) (string, bool, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, Errorf(EFORMAT, "%q must be a string", key)
	}
	return s, true, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
