// Package report renders check results as plain text for CI logs, with
// violations on stderr and success lines on stdout.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/licensedeny/licensedeny/application/checker"
	"github.com/licensedeny/licensedeny/domain/entities"
	"github.com/licensedeny/licensedeny/domain/policy"
)

const divider = "------------------------------------------------------------"

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	denyColor = color.New(color.FgRed)
)

// Renderer writes human-readable check output. Success lines go to out,
// warnings and violations to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

// NewRenderer builds a Renderer. quiet suppresses success output.
func NewRenderer(out, errOut io.Writer, quiet bool) *Renderer {
	return &Renderer{out: out, errOut: errOut, quiet: quiet}
}

// Render writes every scope present in the report and returns whether the
// report passed.
func (r *Renderer) Render(rep checker.Report) bool {
	if rep.Sources != nil {
		r.renderSources(*rep.Sources)
	}
	if rep.Bans != nil {
		r.renderBans(*rep.Bans)
	}
	if rep.Licenses != nil {
		r.renderLicenses(*rep.Licenses)
	}
	return rep.Passed()
}

func (r *Renderer) renderLicenses(rep checker.LicenseReport) {
	if rep.EmptyAllowList {
		warnColor.Fprintln(r.errOut, "Warning: [licenses] allow is empty. All licenses will be rejected.")
	}

	var violations []entities.Classification
	for _, res := range rep.Results {
		switch res.Status {
		case entities.StatusDeny:
			violations = append(violations, res)
		case entities.StatusWarn:
			for _, warning := range res.Warnings {
				warnColor.Fprintf(r.errOut, "Warning: %s==%s: %s\n", res.Package, res.Version, warning)
			}
			r.okLine(res)
		default:
			r.okLine(res)
		}
	}

	if len(violations) > 0 {
		fmt.Fprintln(r.errOut)
		denyColor.Fprintln(r.errOut, "License policy violation detected:")
		fmt.Fprintln(r.errOut, divider)
		for _, res := range violations {
			fmt.Fprintf(r.errOut, "  %s==%s %s\n", res.Package, res.Version, res.Reason)
		}
		return
	}
	if !r.quiet {
		fmt.Fprintln(r.out)
		okColor.Fprintln(r.out, "All dependencies comply with license policy!")
	}
}

func (r *Renderer) okLine(res entities.Classification) {
	if r.quiet {
		return
	}
	detail := res.Detail
	if detail == "" {
		detail = entities.DetailMetadata
	}
	fmt.Fprintf(r.out, "[ok:%s] %s==%s (%s)\n", detail, res.Package, res.Version, res.License)
}

func (r *Renderer) renderBans(rep policy.BanResult) {
	if !r.quiet {
		for _, hit := range rep.Skipped {
			line := fmt.Sprintf("[skipped] %s==%s", hit.Package.Name, hit.Package.Version)
			if hit.Reason != "" {
				line += " reason: " + hit.Reason
			}
			fmt.Fprintln(r.out, line)
		}
	}
	if len(rep.Violations) == 0 {
		if !r.quiet {
			fmt.Fprintln(r.out, "No banned dependencies found.")
		}
		return
	}
	fmt.Fprintln(r.errOut)
	denyColor.Fprintln(r.errOut, "Banned dependencies detected:")
	fmt.Fprintln(r.errOut, divider)
	for _, hit := range rep.Violations {
		line := fmt.Sprintf("  %s==%s", hit.Package.Name, hit.Package.Version)
		if hit.Reason != "" {
			line += " reason: " + hit.Reason
		}
		fmt.Fprintln(r.errOut, line)
	}
}

func (r *Renderer) renderSources(rep checker.SourceReport) {
	var violations []entities.Classification
	for _, res := range rep.Results {
		if res.Status == entities.StatusDeny {
			violations = append(violations, res)
			continue
		}
		for _, warning := range res.Warnings {
			warnColor.Fprintf(r.errOut, "Warning: %s==%s: %s\n", res.Package, res.Version, warning)
		}
	}
	if len(violations) == 0 {
		if !r.quiet {
			fmt.Fprintln(r.out, "All dependencies originate from allowed sources.")
		}
		return
	}
	fmt.Fprintln(r.errOut)
	denyColor.Fprintln(r.errOut, "Unapproved package sources found:")
	fmt.Fprintln(r.errOut, divider)
	for _, res := range violations {
		fmt.Fprintf(r.errOut, "  %s==%s source=%s\n", res.Package, res.Version, res.License)
	}
}

// ListFormat selects the machine format of the list command.
type ListFormat string

const (
	// FormatText is the line-per-package human format.
	FormatText ListFormat = "text"

	// FormatJSON marshals the listing as JSON.
	FormatJSON ListFormat = "json"

	// FormatYAML marshals the listing as YAML.
	FormatYAML ListFormat = "yaml"
)

// ParseListFormat validates a format argument.
func ParseListFormat(s string) (ListFormat, bool) {
	switch ListFormat(s) {
	case FormatText, FormatJSON, FormatYAML:
		return ListFormat(s), true
	default:
		return "", false
	}
}

// ListItem is one row of the list command's machine output.
type ListItem struct {
	Name       string              `json:"name" yaml:"name"`
	Version    string              `json:"version" yaml:"version"`
	License    string              `json:"license" yaml:"license"`
	RawLicense string              `json:"raw_license,omitempty" yaml:"raw_license,omitempty"`
	Source     entities.SourceInfo `json:"source" yaml:"source"`
}

// RenderList writes the package listing. displayLicense produces the
// normalized display string for one package.
func (r *Renderer) RenderList(pkgs []entities.PackageRecord, format ListFormat, showRaw bool,
	displayLicense func(entities.PackageRecord, bool) string) error {
	if format == FormatText {
		for _, pkg := range pkgs {
			fmt.Fprintf(r.out, "%s==%s [%s] source=%s\n",
				pkg.Name, pkg.Version, displayLicense(pkg, showRaw), pkg.Source.Label)
		}
		return nil
	}

	items := make([]ListItem, 0, len(pkgs))
	for _, pkg := range pkgs {
		item := ListItem{
			Name:    pkg.Name,
			Version: pkg.Version,
			License: displayLicense(pkg, false),
			Source:  pkg.Source,
		}
		if showRaw && !strings.EqualFold(pkg.RawLicense, item.License) {
			item.RawLicense = pkg.RawLicense
		}
		items = append(items, item)
	}

	switch format {
	case FormatJSON:
		encoded, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode listing: %w", err)
		}
		fmt.Fprintln(r.out, string(encoded))
	case FormatYAML:
		encoded, err := yaml.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to encode listing: %w", err)
		}
		fmt.Fprint(r.out, string(encoded))
	}
	return nil
}
