package reporter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/yaklabco/mdtmpl/pkg/render"
	"github.com/yaklabco/mdtmpl/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// Rules for outcomes that are not compiler diagnostics.
const (
	ruleBuildFailure  = "build-failure"
	ruleStaleTemplate = "stale-template"
)

// ruleDescriptions describes every rule a result can reference.
//
//nolint:gochecknoglobals // Static lookup table
var ruleDescriptions = map[string]string{
	render.CodeMalformedDirective: "A code block directive could not be parsed.",
	render.CodeMissingTag:         "Rendered markup had no tag to carry a template attribute.",
	ruleBuildFailure:              "The file could not be compiled or its template could not be written.",
	ruleStaleTemplate:             "The generated template is missing or out of date.",
}

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single build run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a kind of diagnostic.
type SARIFRule struct {
	ID               string               `json:"id"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine int `json:"startLine"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.opts.Writer)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "mdtmpl",
				Version:        r.opts.ToolVersion,
				InformationURI: "https://github.com/yaklabco/mdtmpl",
				Rules:          make([]SARIFRule, 0),
			},
		},
		Results: make([]SARIFResult, 0),
	}

	if result != nil {
		for _, file := range result.Files {
			uri := r.opts.displayPath(file.Path)

			for _, diag := range file.Diagnostics {
				run.Results = append(run.Results, newSARIFResult(
					lo.CoalesceOrEmpty(diag.Code, render.CodeMissingTag),
					severityToSARIFLevel(diag.Severity),
					diag.Message, uri, diag.Line,
				))
			}

			if file.Status == runner.StatusStale {
				run.Results = append(run.Results, newSARIFResult(
					ruleStaleTemplate, "error", r.opts.displayPath(file.Destination)+" is out of date", uri, 0,
				))
			}

			if file.Error != nil && len(file.Diagnostics) == 0 {
				run.Results = append(run.Results, newSARIFResult(
					ruleBuildFailure, "error", file.Error.Error(), uri, 0,
				))
			}
		}
	}

	ruleIDs := lo.Uniq(lo.Map(run.Results, func(res SARIFResult, _ int) string { return res.RuleID }))
	run.Tool.Driver.Rules = lo.Map(ruleIDs, func(id string, _ int) SARIFRule {
		return SARIFRule{ID: id, ShortDescription: SARIFMultiformatText{Text: ruleDescriptions[id]}}
	})

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func newSARIFResult(ruleID, level, message, uri string, line int) SARIFResult {
	location := SARIFPhysicalLocation{ArtifactLocation: SARIFArtifactLocation{URI: uri}}
	if line > 0 {
		location.Region = &SARIFRegion{StartLine: line}
	}

	return SARIFResult{
		RuleID:    ruleID,
		Level:     level,
		Message:   SARIFMessage{Text: message},
		Locations: []SARIFLocation{{PhysicalLocation: location}},
	}
}

// severityToSARIFLevel converts a diagnostic severity to a SARIF level.
func severityToSARIFLevel(severity render.Severity) string {
	switch severity {
	case render.SeverityError:
		return "error"
	case render.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
