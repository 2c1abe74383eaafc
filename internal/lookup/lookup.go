package lookup

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/SirSluginston/SirSluginston-Backend/internal/errs"
	"github.com/SirSluginston/SirSluginston-Backend/internal/normalize"
	"github.com/SirSluginston/SirSluginston-Backend/internal/record"
)

// Store is the read side of the config table. Records come back decoded and
// in projectKey/pageKey casing. Scan with an empty project reads everything.
type Store interface {
	Get(ctx context.Context, project, page string) (record.Record, bool, error)
	Scan(ctx context.Context, project string) ([]record.Record, error)
}

type Options struct {
	// AllPolicy applies to the full listing.
	AllPolicy normalize.Policy
	// ProjectPolicy applies to the project-scoped listing.
	ProjectPolicy normalize.Policy
}

type Service struct {
	store Store
	opts  Options
	log   *zap.Logger
}

func NewService(store Store, opts Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, opts: opts, log: log}
}

// ProjectListing is the project-scoped response: {project, ...fields, pages}.
// Fields is only populated under MergeProjectConfig.
type ProjectListing struct {
	Project string
	Fields  map[string]any
	Pages   []record.Record
}

func (l ProjectListing) MarshalJSON() ([]byte, error) {
	return normalize.EncodeObject("project", l.Project, l.Fields, l.Pages)
}

// Get returns the single record stored under (project, page), flat.
func (s *Service) Get(ctx context.Context, project, page string) (record.Record, error) {
	project = strings.TrimSpace(project)
	page = strings.TrimSpace(page)
	if project == "" || page == "" {
		return nil, errs.Invalid("missing project or page parameter")
	}

	rec, ok, err := s.store.Get(ctx, project, page)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", project, page, err)
	}
	if !ok {
		return nil, errs.ErrNotFound
	}
	return rec, nil
}

// Project lists every page of one project in scan order.
func (s *Service) Project(ctx context.Context, project string) (ProjectListing, error) {
	project = strings.TrimSpace(project)
	if project == "" {
		return ProjectListing{}, errs.Invalid("missing project parameter")
	}

	recs, err := s.store.Scan(ctx, project)
	if err != nil {
		return ProjectListing{}, fmt.Errorf("scan project %s: %w", project, err)
	}

	// The store filter is advisory; keep only exact matches.
	matching := recs[:0:0]
	for _, r := range recs {
		if r.ProjectKey() == project {
			matching = append(matching, r)
		}
	}

	out := ProjectListing{Project: project, Pages: []record.Record{}}
	if g, ok := normalize.Find(normalize.Group(matching, s.opts.ProjectPolicy), project); ok {
		out.Fields = g.Fields
		out.Pages = g.Pages
	}
	s.log.Debug("project listing",
		zap.String("project", project),
		zap.Int("pages", len(out.Pages)),
		zap.Stringer("policy", s.opts.ProjectPolicy))
	return out, nil
}

// All returns the whole table grouped by project, in first-seen order.
func (s *Service) All(ctx context.Context) ([]normalize.ProjectGroup, error) {
	recs, err := s.store.Scan(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("scan all: %w", err)
	}
	groups := normalize.Group(recs, s.opts.AllPolicy)
	s.log.Debug("full listing",
		zap.Int("records", len(recs)),
		zap.Int("projects", len(groups)),
		zap.Stringer("policy", s.opts.AllPolicy))
	return groups, nil
}
