package normalize

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/SirSluginston/SirSluginston-Backend/internal/record"
)

// MarshalJSON writes projectKey, then the project-level fields in key order,
// then pages.
func (g ProjectGroup) MarshalJSON() ([]byte, error) {
	return EncodeObject(record.ProjectKeyField, g.ProjectKey, g.Fields, g.Pages)
}

// EncodeObject renders {keyName: key, ...fields, pages: [...]} with a stable
// field order. Fields named keyName or pages are ignored.
func EncodeObject(keyName, key string, fields map[string]any, pages []record.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeField(&buf, keyName, key); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(fields))
	for k := range fields {
		if k == keyName || k == record.PagesField {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		buf.WriteByte(',')
		if err := writeField(&buf, k, fields[k]); err != nil {
			return nil, err
		}
	}

	if pages == nil {
		pages = []record.Record{}
	}
	buf.WriteByte(',')
	if err := writeField(&buf, record.PagesField, pages); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, name string, v any) error {
	k, err := Marshal(name)
	if err != nil {
		return err
	}
	val, err := Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

// Marshal is json.Marshal without HTML escaping, so page bodies containing
// markup survive byte-for-byte.
func Marshal(v any) ([]byte, error) {
	return encode(v, "")
}

// MarshalIndent is Marshal with the given indent, no prefix.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return encode(v, indent)
}

func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
