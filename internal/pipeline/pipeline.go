// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package pipeline reads sample documents, infers their types and renders
// them with a target.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dacolabs/typegen/internal/cjson"
	"github.com/dacolabs/typegen/internal/config"
	"github.com/dacolabs/typegen/internal/inference"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/typegraph"
	"github.com/dacolabs/typegen/internal/union"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoSamples indicates an input whose files hold no documents.
	ErrNoSamples = errors.New("no samples")

	// ErrUnsupportedFormat indicates a sample file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported sample format")
)

// Input names one top-level type and the sample files it is inferred from.
type Input = config.Input

// Result is the outcome of a run.
type Result struct {
	Graph *typegraph.Graph
	// Code is the rendered output of the target.
	Code []byte
	// Samples counts the documents read across all inputs.
	Samples int
}

// Runner executes the generation pipeline.
type Runner struct {
	logger logrus.FieldLogger
}

// New returns a Runner logging to logger.
func New(logger logrus.FieldLogger) *Runner {
	return &Runner{logger: logger}
}

// Run infers one top-level type per input and renders the graph with target.
// All inputs share one value store, so equal shapes across inputs resolve to
// the same type.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, inputs []Input, target render.Target) (*Result, error) {
	policy, err := union.ParseStringPolicy(cfg.Inference.StringPolicy)
	if err != nil {
		return nil, err
	}

	store := cjson.NewStore(cjson.Options{
		InferDates:  cfg.Inference.Dates,
		InternLimit: cfg.Inference.InternLimit,
	})
	builder := typegraph.NewBuilder()
	engine := inference.New(builder, store, inference.Options{
		InferEnums: cfg.Inference.Enums,
		Union: union.Options{
			Policy:        policy,
			MaxEnumCases:  cfg.Inference.MaxEnumCases,
			WidenIntegers: cfg.Inference.WidenIntegers,
		},
	})

	result := &Result{}
	for _, in := range inputs {
		log := r.logger.WithField("top_level", in.Name)

		var docs []cjson.Value
		for _, file := range in.Files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			values, err := readSamples(store, file)
			if err != nil {
				return nil, err
			}
			log.WithFields(logrus.Fields{"file": file, "samples": len(values)}).Debug("read samples")
			docs = append(docs, values...)
		}
		if len(docs) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoSamples, in.Name)
		}

		engine.InferTopLevel(in.Name, docs)
		result.Samples += len(docs)
		log.WithField("samples", len(docs)).Info("inferred top-level type")
	}

	result.Graph = builder.Finish()

	code, err := target.Render(result.Graph, render.Options{
		Package: cfg.Package,
		Header:  cfg.Header,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", target.Name(), err)
	}
	result.Code = code

	r.logger.WithFields(logrus.Fields{
		"target": target.Name(),
		"types":  result.Graph.Len(),
	}).Info("rendered types")

	return result, nil
}

func readSamples(store *cjson.Store, path string) ([]cjson.Value, error) {
	var parse func(io.Reader) ([]cjson.Value, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl":
		parse = store.ParseJSON
	case ".yaml", ".yml":
		parse = store.ParseYAML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, fmt.Errorf("failed to open samples: %w", err)
	}
	defer f.Close() //nolint:errcheck

	values, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}
