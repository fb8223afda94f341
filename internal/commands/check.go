// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// ErrStale is returned by generate --check when the file on disk differs
// from the freshly generated code.
var ErrStale = errors.New("generated output is out of date")

// checkOutput compares the file at path with code and writes a patch to w
// when they differ.
func checkOutput(w io.Writer, path string, code []byte) error {
	current, err := os.ReadFile(path) //nolint:gosec // path is built from config
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if string(current) == string(code) {
		return nil
	}

	dmp := diffpatch.New()
	diffs := dmp.DiffMain(string(current), string(code), true)
	patches := dmp.PatchMake(string(current), diffs)
	_, _ = fmt.Fprintf(w, "--- %s\n+++ generated\n%s", path, dmp.PatchToText(patches))

	return fmt.Errorf("%w: %s", ErrStale, path)
}
