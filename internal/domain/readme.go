package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Package describes a Unity package manifest (package.json).
type Package struct {
	Dependencies map[string]string `json:"dependencies"`
	Name         string            `json:"name"`
	DisplayName  string            `json:"displayName"`
	Version      string            `json:"version"`
	Unity        string            `json:"unity"`
	API          string            `json:"api"`
	Description  string            `json:"description"`
}

// Validate checks required manifest fields.
func (p *Package) Validate(source string) error {
	if p.Name == "" {
		return MissingField(source, "name")
	}
	if p.Version == "" {
		return MissingField(source, "version")
	}
	return nil
}

// ReadmeConfig holds the free-form parts of a generated README.
type ReadmeConfig struct {
	FullDescription string `yaml:"fullDescription" toml:"fullDescription"`
	Closing         string `yaml:"closing" toml:"closing"`
	Footer          string `yaml:"footer" toml:"footer"`
}

// RenderReadme renders a package README with CRLF line endings.
func RenderReadme(p *Package, cfg *ReadmeConfig) string {
	var b strings.Builder

	b.WriteString("# " + p.Name + "\n")
	if p.DisplayName != "" {
		b.WriteString(p.DisplayName + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Info\n")
	fmt.Fprintf(&b, "- **Version**: `%s`\n", p.Version)
	if p.Unity != "" {
		fmt.Fprintf(&b, "- **Unity**: `%s`\n", p.Unity)
	}
	if p.API != "" {
		fmt.Fprintf(&b, "- **API Compatibility Level**: `%s`\n", p.API)
	}
	b.WriteString("\n")

	if p.Dependencies != nil {
		b.WriteString("### Dependencies\n")
		if len(p.Dependencies) == 0 {
			b.WriteString("- N/A\n")
		}
		keys := make([]string, 0, len(p.Dependencies))
		for k := range p.Dependencies {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: `%s`\n", k, p.Dependencies[k])
		}
		b.WriteString("\n")
	}

	b.WriteString("### Description\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n")
	} else {
		b.WriteString("No description.\n")
	}
	if cfg.FullDescription != "" {
		b.WriteString("\n" + cfg.FullDescription + "\n")
	}
	b.WriteString("\n")

	if cfg.Closing != "" {
		b.WriteString(cfg.Closing + "\n")
	}
	if cfg.Footer != "" {
		b.WriteString("\n" + cfg.Footer + "\n")
	}

	return NormalizeLineEndings(b.String(), LineEndingCRLF)
}
