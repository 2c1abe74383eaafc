// Package sitesync pulls the full config listing from the lookup API,
// normalizes it and writes it out for the static site.
package sitesync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SirSluginston/SirSluginston-Backend/internal/normalize"
)

// Default endpoint and output paths. Output paths are relative to the
// backend checkout, with the site repo checked out next to it.
const (
	DefaultEndpoint = "https://4x3uabdru4.execute-api.us-east-2.amazonaws.com/config"
	DefaultJSPath   = "../SirSluginston-Site/projects-config.js"
	DefaultJSONPath = "../SirSluginston-Site/projects-config.json"
)

type Config struct {
	Endpoint string
	JSPath   string
	JSONPath string
}

type Syncer struct {
	cfg      Config
	client   HTTPDoer
	sinks    []Sink
	notifier *Notifier
	log      *zap.Logger
}

// NewSyncer wires a run. The local sink is always used first; extra sinks
// (S3) run after it. notifier may be nil.
func NewSyncer(cfg Config, client HTTPDoer, extra []Sink, notifier *Notifier, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	sinks := append([]Sink{LocalSink{}}, extra...)
	return &Syncer{cfg: cfg, client: client, sinks: sinks, notifier: notifier, log: log}
}

// Run performs one sequential pass: fetch, parse, normalize, render, publish.
// Any failure aborts the run.
func (s *Syncer) Run(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	log := s.log.With(zap.String("runId", runID))

	log.Info("fetching config", zap.String("endpoint", s.cfg.Endpoint))
	body, err := Fetch(ctx, s.client, s.cfg.Endpoint)
	if err != nil {
		return Summary{}, err
	}
	log.Debug("raw api response", zap.ByteString("body", body))

	raw, err := Parse(body)
	if err != nil {
		return Summary{}, err
	}

	groups := normalize.Normalize(raw, normalize.MergeProjectConfig)

	artifacts, err := Render(groups, s.cfg.JSPath, s.cfg.JSONPath)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		RunID:    runID,
		Endpoint: s.cfg.Endpoint,
		Projects: len(groups),
		Pages:    len(normalize.Pages(groups)),
	}
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, artifacts); err != nil {
			return Summary{}, fmt.Errorf("publish to %s: %w", sink.Name(), err)
		}
		for _, a := range artifacts {
			log.Info("artifact written", zap.String("sink", sink.Name()), zap.String("path", a.Path))
		}
	}
	for _, a := range artifacts {
		sum.Artifacts = append(sum.Artifacts, a.Path)
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, sum); err != nil {
			return sum, err
		}
	}

	log.Info("local config updated",
		zap.Int("projects", sum.Projects),
		zap.Int("pages", sum.Pages))
	return sum, nil
}
