// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/graphqlcore/internal/errors"
	"github.com/kraklabs/graphqlcore/pkg/lint"
	"github.com/kraklabs/graphqlcore/pkg/project"
)

// DefaultConfigName is the file gqlcore looks for when --config isn't given.
const DefaultConfigName = "gqlcore.yaml"

// FileConfig is gqlcore.yaml's top-level shape: one or more named
// projects, each with its own schema/document patterns, lint overrides,
// and opaque tool extensions.
type FileConfig struct {
	Projects []ProjectFileConfig `yaml:"projects"`
}

// ProjectFileConfig is one `projects:` entry.
type ProjectFileConfig struct {
	Name       string                 `yaml:"name"`
	Schema     yamlStringList         `yaml:"schema"`
	Documents  yamlStringList         `yaml:"documents"`
	Include    yamlStringList         `yaml:"include"`
	Exclude    yamlStringList         `yaml:"exclude"`
	Lint       map[string]RuleEntry   `yaml:"lint"`
	Extensions map[string]interface{} `yaml:"extensions"`
}

// RuleEntry is one `lint:` map value: either a bare severity string
// ("error"/"warn"/"off") or a map with a severity key and rule-specific
// options, matching the Config surface's "map of rule -> severity|options".
type RuleEntry struct {
	Severity string
	Options  json.RawMessage
}

// UnmarshalYAML accepts either a scalar severity or a mapping with a
// `severity` key plus arbitrary rule-specific option fields.
func (r *RuleEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&r.Severity)
	}

	var raw map[string]interface{}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if sev, ok := raw["severity"].(string); ok {
		r.Severity = sev
		delete(raw, "severity")
	}
	if len(raw) > 0 {
		opts, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		r.Options = opts
	}
	return nil
}

// yamlStringList decodes either a single scalar string or a sequence of
// strings into a []string, matching the Config surface's "one-or-many
// globs" patterns.
type yamlStringList []string

func (l *yamlStringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = []string{s}
		return nil
	}
	var ss []string
	if err := value.Decode(&ss); err != nil {
		return err
	}
	*l = ss
	return nil
}

// LoadFileConfig reads and parses path as a gqlcore.yaml document.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError(
				"Cannot find project configuration",
				fmt.Sprintf("%s does not exist", path),
				fmt.Sprintf("Create %s declaring at least one project, or pass --config", path),
				err,
			)
		}
		return nil, errors.NewConfigError(
			"Cannot read project configuration",
			err.Error(),
			fmt.Sprintf("Check that %s is readable", path),
			err,
		)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigError(
			"Cannot parse project configuration",
			err.Error(),
			fmt.Sprintf("Check %s for YAML syntax errors", path),
			err,
		)
	}
	if len(cfg.Projects) == 0 {
		return nil, errors.NewConfigError(
			"Project configuration declares no projects",
			fmt.Sprintf("%s has an empty or missing 'projects:' list", path),
			"Add at least one entry under 'projects:' with schema/documents patterns",
			nil,
		)
	}
	return &cfg, nil
}

// ResolveConfigPath returns the config path to use: the explicit flag
// value if set, else DefaultConfigName in the current directory.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return DefaultConfigName
}

// ToProjectConfigs converts the YAML file shape into pkg/project.Config
// values, attaching path/line-free source info (gqlcore.yaml doesn't
// track per-pattern line numbers, only the file as a whole).
func (c *FileConfig) ToProjectConfigs(sourceFile string) []project.Config {
	out := make([]project.Config, 0, len(c.Projects))
	for _, p := range c.Projects {
		out = append(out, project.Config{
			Name:       p.Name,
			Schema:     p.Schema,
			Documents:  p.Documents,
			Include:    p.Include,
			Exclude:    p.Exclude,
			SourceFile: sourceFile,
		})
	}
	return out
}

// LintConfigFor builds a pkg/lint.LintConfig from one project's `lint:`
// overrides.
func (p ProjectFileConfig) LintConfigFor() lint.LintConfig {
	rules := make(map[string]lint.RuleConfig, len(p.Lint))
	for name, entry := range p.Lint {
		rules[name] = lint.RuleConfig{
			Severity: lint.RuleSeverity(entry.Severity),
			Options:  entry.Options,
		}
	}
	return lint.LintConfig{Rules: rules}
}

// projectByName returns the file config entry named name, or false.
func (c *FileConfig) projectByName(name string) (ProjectFileConfig, bool) {
	for _, p := range c.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return ProjectFileConfig{}, false
}

// selectedProjects returns the projects a run should cover: every
// project, or just filter if it names one.
func (c *FileConfig) selectedProjects(filter string) ([]ProjectFileConfig, error) {
	if filter == "" {
		return c.Projects, nil
	}
	p, ok := c.projectByName(filter)
	if !ok {
		names := make([]string, 0, len(c.Projects))
		for _, pp := range c.Projects {
			names = append(names, pp.Name)
		}
		return nil, errors.NewNotFoundError(
			fmt.Sprintf("No project named %q", filter),
			fmt.Sprintf("Declared projects: %v", names),
			"Check --project against the 'name:' fields in your config",
		)
	}
	return []ProjectFileConfig{p}, nil
}

// configDir returns the directory patterns in path are relative to.
func configDir(path string) string {
	return filepath.Dir(path)
}
