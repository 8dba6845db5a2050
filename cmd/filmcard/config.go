package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fwojciec/filmcard"
	"github.com/fwojciec/filmcard/yaml"
)

// Run executes the config show command.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	cfg, err := deps.Config.Snapshot(deps.Ctx, c.Dest)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmcard.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "destination: %s\n", destinationLabel(cfg.Destination))
	fmt.Fprintf(deps.Stdout, "version: %016x\n", cfg.Version)
	fmt.Fprintf(deps.Stdout, "order: %s\n", cfg.Order.String())

	names := make([]string, 0, len(cfg.Formats))
	for name := range cfg.Formats {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, cfg.Formats[name])
	}
	return w.Flush()
}

// Run executes the config list command.
func (c *ConfigListCmd) Run(deps *Dependencies) error {
	var filter filmcard.SettingFilter
	if c.Global {
		dest := filmcard.GlobalDestination
		filter.Destination = &dest
	} else if c.Dest != "" {
		filter.Destination = &c.Dest
	}

	settings, err := deps.Config.FindSettings(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmcard.ErrorMessage(err))
		return err
	}

	if len(settings) == 0 {
		fmt.Fprintln(deps.Stdout, "No settings stored. Built-in defaults apply; see 'filmcard config show'.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range settings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", destinationLabel(s.Destination), s.Key, s.Value, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// Run executes the config set-format command.
func (c *ConfigSetFormatCmd) Run(deps *Dependencies) error {
	if err := deps.Config.SetFormat(deps.Ctx, c.Dest, c.Name, c.Format); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmcard.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Set format %q for %s\n", c.Name, destinationLabel(c.Dest))
	return nil
}

// Run executes the config unset-format command.
func (c *ConfigUnsetFormatCmd) Run(deps *Dependencies) error {
	if err := deps.Config.DeleteFormat(deps.Ctx, c.Dest, c.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmcard.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Removed format %q for %s\n", c.Name, destinationLabel(c.Dest))
	return nil
}

// Run executes the config set-order command.
func (c *ConfigSetOrderCmd) Run(deps *Dependencies) error {
	spec := filmcard.ParseLineSpec(c.Spec)
	if err := deps.Config.SetOrder(deps.Ctx, c.Dest, spec); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmcard.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Set order %q for %s\n", spec.String(), destinationLabel(c.Dest))
	return nil
}

// Run executes the config unset-order command.
func (c *ConfigUnsetOrderCmd) Run(deps *Dependencies) error {
	if err := deps.Config.DeleteOrder(deps.Ctx, c.Dest); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmcard.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Removed order for %s\n", destinationLabel(c.Dest))
	return nil
}

// Run executes the config import command.
func (c *ConfigImportCmd) Run(deps *Dependencies) error {
	var r io.Reader = deps.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer f.Close()
		r = f
	}

	n, err := yaml.Import(deps.Ctx, deps.Config, r)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmcard.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Imported %d settings\n", n)
	return nil
}

func destinationLabel(dest string) string {
	if dest == filmcard.GlobalDestination {
		return "(global)"
	}
	return dest
}
