package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/filmcard"
	"github.com/fwojciec/filmcard/lookup"
)

// Run executes the extract command. A target starting with http:// or
// https:// is fetched; anything else is read as a local HTML file, with -
// meaning stdin.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	d := lookup.NewWriterDeliverer(deps.Stdout, deps.Stderr)

	if isURL(c.Target) {
		_, err := deps.Lookup.ExtractURL(deps.Ctx, c.Target, c.Dest, d)
		return err
	}

	page, ref, err := c.readLocal(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmcard.ErrorMessage(err))
		return err
	}
	if c.URL != "" {
		ref = c.URL
	}

	_, err = deps.Lookup.ExtractDocument(deps.Ctx, page, ref, c.Dest, d)
	return err
}

// readLocal reads the target page and returns it with a reference for the
// url field.
func (c *ExtractCmd) readLocal(stdin io.Reader) ([]byte, string, error) {
	if c.Target == "-" {
		page, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", filmcard.Errorf(filmcard.EDOCUMENT, "failed to read stdin: %v", err)
		}
		return page, "", nil
	}

	page, err := os.ReadFile(c.Target)
	if os.IsNotExist(err) {
		return nil, "", filmcard.Errorf(filmcard.ENOTFOUND, "file %q not found", c.Target)
	} else if err != nil {
		return nil, "", filmcard.Errorf(filmcard.EDOCUMENT, "failed to read %q: %v", c.Target, err)
	}

	ref := c.Target
	if abs, err := filepath.Abs(c.Target); err == nil {
		ref = "file://" + filepath.ToSlash(abs)
	}
	return page, ref, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
