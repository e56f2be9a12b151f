// Package config loads batch manifests: ordered lists of invocations for
// the procrun harness to execute sequentially.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zorba-modules/process/internal/command"
)

// Manifest is the root of a batch file.
type Manifest struct {
	Commands []*Command `yaml:"commands"`
}

// Command is one manifest entry. Exactly one of Program and Shell must be
// set: Program selects literal-argv semantics, Shell selects shell-line
// semantics with Shell as the command word.
type Command struct {
	Name    string   `yaml:"name"`
	Program string   `yaml:"program"`
	Shell   string   `yaml:"shell"`
	Args    []string `yaml:"args"`
	// Env holds ordered NAME=VALUE assignments. Non-empty replaces the
	// child's environment outright; empty inherits the harness's.
	Env []string `yaml:"env"`
}

// DisplayName labels the entry in harness output.
func (c *Command) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Program != "" {
		return c.Program
	}
	return c.Shell
}

// Spec converts the entry into an engine spec.
func (c *Command) Spec() (*command.Spec, error) {
	spec := &command.Spec{Args: c.Args}
	switch {
	case c.Program != "" && c.Shell != "":
		return nil, fmt.Errorf("command %q: program and shell are mutually exclusive", c.DisplayName())
	case c.Program != "":
		spec.Program = c.Program
		spec.Mode = command.ModeExec
	case c.Shell != "":
		spec.Program = c.Shell
		spec.Mode = command.ModeShell
	default:
		return nil, fmt.Errorf("command %q: one of program or shell is required", c.DisplayName())
	}
	for _, kv := range c.Env {
		v, err := command.ParseEnv(kv)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", c.DisplayName(), err)
		}
		spec.Env = append(spec.Env, v)
	}
	return spec, nil
}

// Load reads a batch manifest from the provided path.
func Load(path string) (*Manifest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest path: %w", err)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	var doc Manifest
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", absPath, err)
	}

	if len(doc.Commands) == 0 {
		return nil, fmt.Errorf("%s: manifest declares no commands", absPath)
	}
	for _, c := range doc.Commands {
		if c == nil {
			return nil, fmt.Errorf("%s: manifest contains an empty command entry", absPath)
		}
		if _, err := c.Spec(); err != nil {
			return nil, fmt.Errorf("%s: %w", absPath, err)
		}
	}
	return &doc, nil
}
