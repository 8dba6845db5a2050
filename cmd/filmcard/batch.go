package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/filmcard"
	"github.com/fwojciec/filmcard/lookup"
	"golang.org/x/sync/errgroup"
)

// Run executes the batch command. Queries run concurrently but each one's
// output is buffered and written in input order. Blank lines and lines
// starting with # are ignored.
func (c *BatchCmd) Run(deps *Dependencies) error {
	queries, err := c.readQueries(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmcard.ErrorMessage(err))
		return err
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	type output struct {
		stdout bytes.Buffer
		stderr bytes.Buffer
		err    error
	}
	outputs := make([]*output, len(queries))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, query := range queries {
		out := &output{}
		outputs[i] = out
		g.Go(func() error {
			d := lookup.NewWriterDeliverer(&out.stdout, &out.stderr)
			_, out.err = deps.Lookup.Lookup(deps.Ctx, lookup.Request{Query: query, Destination: c.Dest}, d)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	wrote := false
	for i, out := range outputs {
		if out.stdout.Len() > 0 {
			if wrote {
				fmt.Fprintln(deps.Stdout)
			}
			_, _ = io.Copy(deps.Stdout, &out.stdout)
			wrote = true
		}
		if out.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "%s: ", queries[i])
			_, _ = io.Copy(deps.Stderr, &out.stderr)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(queries))
	}
	return nil
}

func (c *BatchCmd) readQueries(stdin io.Reader) ([]string, error) {
	r := stdin
	if c.File != "" && c.File != "-" {
		f, err := os.Open(c.File)
		if os.IsNotExist(err) {
			return nil, filmcard.Errorf(filmcard.ENOTFOUND, "file %q not found", c.File)
		} else if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading queries: %w", err)
	}
	return queries, nil
}
