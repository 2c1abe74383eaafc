// Package normalize groups configuration records into per-project shapes.
//
// Every read path goes through Group: the lookup service with the policy it
// is configured with, and the local sync with MergeProjectConfig. Records are
// expected in either key casing; pages always come out as projectKey/pageKey.
package normalize

import (
	"fmt"
	"maps"
	"strings"

	"github.com/SirSluginston/SirSluginston-Backend/internal/record"
)

// Policy controls what happens to the reserved project-config record.
type Policy int

const (
	// ProjectConfigAsPage lists project-config like any other page.
	ProjectConfigAsPage Policy = iota
	// MergeProjectConfig folds project-config fields into the group and
	// leaves it out of pages.
	MergeProjectConfig
)

func (p Policy) String() string {
	if p == MergeProjectConfig {
		return "merge"
	}
	return "page"
}

// ParsePolicy reads a policy name; the empty string means ProjectConfigAsPage.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "page":
		return ProjectConfigAsPage, nil
	case "merge":
		return MergeProjectConfig, nil
	default:
		return 0, fmt.Errorf("unknown project-config policy %q (want page or merge)", s)
	}
}

// ProjectGroup is every page of one project plus its merged project-level
// fields.
type ProjectGroup struct {
	ProjectKey string
	Fields     map[string]any
	Pages      []record.Record
}

// Group buckets records by project key, keeping first-seen project order and
// encounter order within each project. Records without a project key are
// skipped.
func Group(records []record.Record, policy Policy) []ProjectGroup {
	var order []string
	groups := map[string]*ProjectGroup{}

	for _, r := range records {
		key := r.ProjectKey()
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &ProjectGroup{ProjectKey: key, Fields: map[string]any{}, Pages: []record.Record{}}
			groups[key] = g
			order = append(order, key)
		}

		if policy == MergeProjectConfig && r.IsProjectConfig() {
			for k, v := range r {
				if record.IsKeyField(k) || k == record.PagesField {
					continue
				}
				g.Fields[k] = v
			}
			continue
		}

		page := record.Canonicalize(r)
		delete(page, record.PagesField)
		g.Pages = append(g.Pages, page)
	}

	out := make([]ProjectGroup, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out
}

// groupKeyFields are the names a grouped shape may use for its project key.
var groupKeyFields = []string{record.ProjectKeyField, "project-key", record.ProjectKeyAttr, "project"}

// Flatten collects page-level records from a mix of grouped shapes
// ({projectKey, pages: [...]}) and flat records, discarding the grouping.
// DynamoDB-JSON items are unwrapped first. Project-level fields already
// merged into a grouped shape come back as a synthetic project-config record
// ahead of that group's pages, so regrouping does not lose them.
func Flatten(raw []any) []record.Record {
	var out []record.Record
	for _, it := range raw {
		m, ok := record.Unwrap(it).(map[string]any)
		if !ok {
			continue
		}

		// A page key marks a flat record; Group drops any stray pages field.
		pages, grouped := m[record.PagesField].([]any)
		if !grouped || record.Record(m).PageKey() != "" {
			out = append(out, record.Canonicalize(m))
			continue
		}

		if cfg := projectFields(m); cfg != nil {
			out = append(out, cfg)
		}
		for _, p := range pages {
			pm, ok := record.Unwrap(p).(map[string]any)
			if !ok {
				continue
			}
			out = append(out, record.Canonicalize(pm))
		}
	}
	return out
}

// Normalize flattens raw and regroups it under policy.
func Normalize(raw []any, policy Policy) []ProjectGroup {
	return Group(Flatten(raw), policy)
}

func projectFields(group map[string]any) record.Record {
	var key string
	for _, f := range groupKeyFields {
		if s, ok := group[f].(string); ok && s != "" {
			key = s
			break
		}
	}
	if key == "" {
		return nil
	}

	extra := maps.Clone(group)
	delete(extra, record.PagesField)
	for _, f := range groupKeyFields {
		delete(extra, f)
	}
	delete(extra, record.PageKeyAttr)
	delete(extra, record.PageKeyField)
	if len(extra) == 0 {
		return nil
	}

	extra[record.ProjectKeyField] = key
	extra[record.PageKeyField] = record.ProjectConfigPage
	return extra
}

// Pages returns every page across groups in group order.
func Pages(groups []ProjectGroup) []record.Record {
	var out []record.Record
	for _, g := range groups {
		out = append(out, g.Pages...)
	}
	return out
}

// Find returns the group for key.
func Find(groups []ProjectGroup, key string) (ProjectGroup, bool) {
	for _, g := range groups {
		if g.ProjectKey == key {
			return g, true
		}
	}
	return ProjectGroup{}, false
}
