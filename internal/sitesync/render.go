package sitesync

import (
	"bytes"
	"fmt"

	"github.com/SirSluginston/SirSluginston-Backend/internal/normalize"
)

const generatedHeader = "// AUTO-GENERATED: Do not edit manually\n"

// Artifact is one rendered output file.
type Artifact struct {
	// Path is the local destination; its base name is also the object key
	// suffix for remote sinks.
	Path        string
	ContentType string
	Data        []byte
}

// RenderModule renders groups as an ES module exporting `projects`.
func RenderModule(groups []normalize.ProjectGroup) ([]byte, error) {
	body, err := renderGroups(groups)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)
	buf.WriteString("export const projects = ")
	buf.Write(body)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// RenderJSON renders groups as indented JSON with a trailing newline.
func RenderJSON(groups []normalize.ProjectGroup) ([]byte, error) {
	body, err := renderGroups(groups)
	if err != nil {
		return nil, err
	}
	return append(body, '\n'), nil
}

func renderGroups(groups []normalize.ProjectGroup) ([]byte, error) {
	if groups == nil {
		groups = []normalize.ProjectGroup{}
	}
	b, err := normalize.MarshalIndent(groups, "  ")
	if err != nil {
		return nil, fmt.Errorf("render projects: %w", err)
	}
	return b, nil
}

// Render builds both artifacts for the given destinations.
func Render(groups []normalize.ProjectGroup, jsPath, jsonPath string) ([]Artifact, error) {
	js, err := RenderModule(groups)
	if err != nil {
		return nil, err
	}
	data, err := RenderJSON(groups)
	if err != nil {
		return nil, err
	}
	return []Artifact{
		{Path: jsPath, ContentType: "text/javascript; charset=utf-8", Data: js},
		{Path: jsonPath, ContentType: "application/json", Data: data},
	}, nil
}
