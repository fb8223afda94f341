// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/typegen/internal/config"
)

var (
	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotLoaded indicates a command ran without its project context.
	ErrNotLoaded = errors.New("project context not loaded")
)

// ConfigFileName is the name of the typegen configuration file.
const ConfigFileName = "typegen.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration.
type Context struct {
	// Config is the loaded configuration, or the defaults when the project
	// has no typegen.yaml.
	Config *config.Config

	// Dir is the project directory. Relative paths in Config are resolved
	// against it.
	Dir string

	// Found reports whether typegen.yaml exists in Dir.
	Found bool
}

// ConfigPath returns the location of the project's typegen.yaml.
func (c *Context) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFileName)
}

// Path resolves p against the project directory.
func (c *Context) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadDir(ctx, cwd)
}

// LoadDir is Load for an explicit project directory.
func LoadDir(ctx context.Context, dir string) (context.Context, error) {
	tgCtx := &Context{Config: config.Default(), Dir: dir}

	configPath := tgCtx.ConfigPath()
	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		tgCtx.Config = cfg
		tgCtx.Found = true
	} else if !os.IsNotExist(statErr) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, statErr)
	}

	if err := tgCtx.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return context.WithValue(ctx, contextKey{}, tgCtx), nil
}

// From extracts the Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if tgCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return tgCtx
	}
	return nil
}
