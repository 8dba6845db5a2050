package main

import (
	"strings"

	"github.com/fwojciec/filmcard/lookup"
)

// Run executes the lookup command. Lines go to stdout and the failure
// notification, if any, to stderr.
func (c *LookupCmd) Run(deps *Dependencies) error {
	d := lookup.NewWriterDeliverer(deps.Stdout, deps.Stderr)
	_, err := deps.Lookup.Lookup(deps.Ctx, lookup.Request{
		Query:       strings.Join(c.Query, " "),
		Destination: c.Dest,
	}, d)
	return err
}
