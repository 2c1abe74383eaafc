// Package record converts store items into plain attribute mappings and
// reconciles the two key casings in use (ProjectKey/PageKey on the table,
// projectKey/pageKey everywhere else).
package record

import (
	"encoding/json"
	"maps"
	"strconv"
)

// Table key attribute names.
const (
	ProjectKeyAttr = "ProjectKey"
	PageKeyAttr    = "PageKey"
)

// Canonical key field names used by every client-facing shape.
const (
	ProjectKeyField = "projectKey"
	PageKeyField    = "pageKey"
	PagesField      = "pages"
)

// ProjectConfigPage is the reserved page key whose record carries
// project-level fields.
const ProjectConfigPage = "project-config"

// Record is one configuration entry as a plain attribute mapping.
type Record map[string]any

// ProjectKey returns the record's project key in either casing,
// preferring ProjectKey. Numeric and boolean keys are read as their text.
func (r Record) ProjectKey() string {
	return keyValue(r, ProjectKeyAttr, ProjectKeyField)
}

// PageKey returns the record's page key in either casing, preferring PageKey.
func (r Record) PageKey() string {
	return keyValue(r, PageKeyAttr, PageKeyField)
}

func keyValue(r Record, upper, lower string) string {
	if s := keyString(r[upper]); s != "" {
		return s
	}
	return keyString(r[lower])
}

func keyString(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case json.Number:
		return k.String()
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case bool:
		return strconv.FormatBool(k)
	default:
		return ""
	}
}

// IsProjectConfig reports whether r is the reserved project-config record.
// The match is case-sensitive.
func (r Record) IsProjectConfig() bool {
	return r.PageKey() == ProjectConfigPage
}

// IsKeyField reports whether name is a project or page key in any casing.
func IsKeyField(name string) bool {
	switch name {
	case ProjectKeyAttr, PageKeyAttr, ProjectKeyField, PageKeyField:
		return true
	}
	return false
}

// Canonicalize returns a copy of r with ProjectKey and PageKey renamed to
// projectKey and pageKey. When both casings are present the table casing
// wins and the original field is removed.
func Canonicalize(r Record) Record {
	out := make(Record, len(r))
	maps.Copy(out, r)
	rename(out, ProjectKeyAttr, ProjectKeyField)
	rename(out, PageKeyAttr, PageKeyField)
	return out
}

func rename(r Record, from, to string) {
	v, ok := r[from]
	if !ok {
		return
	}
	delete(r, from)
	if s, isStr := v.(string); isStr && s == "" {
		if _, has := r[to]; has {
			return
		}
	}
	r[to] = v
}
