package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/filmcard"
	"github.com/fwojciec/filmcard/lookup"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config filmcard.ConfigService
	Lookup *lookup.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"FILMCARD_DB" help:"Database path (default ~/.filmcard/filmcard.db)"`
	Search    string `enum:"duckduckgo,rss,searxng" default:"duckduckgo" env:"FILMCARD_SEARCH" help:"Search provider (duckduckgo, rss, searxng)"`
	SearchURL string `name:"search-url" env:"FILMCARD_SEARCH_URL" help:"Search endpoint: base URL for searxng and duckduckgo, URL template for rss"`
	Verbose   bool   `short:"v" help:"Log lookup progress to stderr"`

	Lookup  LookupCmd  `cmd:"" help:"Find a title and print its card"`
	Extract ExtractCmd `cmd:"" help:"Print the card for a title page URL or saved file"`
	Batch   BatchCmd   `cmd:"" help:"Look up one query per line"`
	Config  ConfigCmd  `cmd:"" help:"Show and change output formats"`
}

// FetchFlags are shared by commands that fetch title pages.
type FetchFlags struct {
	Dest       string        `short:"d" help:"Destination whose output configuration is used"`
	Browser    bool          `short:"b" help:"Render pages in headless Chrome"`
	Timeout    time.Duration `default:"10s" help:"Timeout for each search and fetch"`
	Rate       float64       `default:"1" help:"Maximum fetches per second per host (0 disables)"`
	MaxResults int           `name:"max-results" default:"10" help:"Search results to consider"`
	SaveDir    string        `name:"save-dir" type:"path" help:"Keep a copy of every fetched title page in this directory"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Query []string `arg:"" help:"Title to look up"`
	FetchFlags `embed:""`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Target string `arg:"" help:"Title page URL, HTML file path, or - for stdin"`
	URL    string `name:"url" help:"URL recorded for a file or stdin page"`
	FetchFlags `embed:""`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File        string `arg:"" optional:"" default:"-" help:"File with one query per line (default stdin)"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent lookups"`
	FetchFlags  `embed:""`
}

// ConfigCmd groups the "config" subcommands.
type ConfigCmd struct {
	Show        ConfigShowCmd        `cmd:"" help:"Show the effective configuration"`
	List        ConfigListCmd        `cmd:"" help:"List stored settings"`
	SetFormat   ConfigSetFormatCmd   `cmd:"" name:"set-format" help:"Set a template format"`
	UnsetFormat ConfigUnsetFormatCmd `cmd:"" name:"unset-format" help:"Remove a template format"`
	SetOrder    ConfigSetOrderCmd    `cmd:"" name:"set-order" help:"Set the line order, e.g. 'title;rating,runtime'"`
	UnsetOrder  ConfigUnsetOrderCmd  `cmd:"" name:"unset-order" help:"Remove the line order"`
	Import      ConfigImportCmd      `cmd:"" help:"Import settings from a YAML file"`
}

// ConfigShowCmd is the "config show" subcommand.
type ConfigShowCmd struct {
	Dest string `short:"d" help:"Destination"`
}

// ConfigListCmd is the "config list" subcommand.
type ConfigListCmd struct {
	Dest   string `short:"d" help:"Only list settings stored for this destination"`
	Global bool   `short:"g" help:"Only list global settings"`
}

// ConfigSetFormatCmd is the "config set-format" subcommand.
type ConfigSetFormatCmd struct {
	Name   string `arg:"" help:"Template name"`
	Format string `arg:"" help:"Format with %(field)s placeholders"`
	Dest   string `short:"d" help:"Destination (default global)"`
}

// ConfigUnsetFormatCmd is the "config unset-format" subcommand.
type ConfigUnsetFormatCmd struct {
	Name string `arg:"" help:"Template name"`
	Dest string `short:"d" help:"Destination (default global)"`
}

// ConfigSetOrderCmd is the "config set-order" subcommand.
type ConfigSetOrderCmd struct {
	Spec string `arg:"" help:"Lines separated by ';', template names by ','"`
	Dest string `short:"d" help:"Destination (default global)"`
}

// ConfigUnsetOrderCmd is the "config unset-order" subcommand.
type ConfigUnsetOrderCmd struct {
	Dest string `short:"d" help:"Destination (default global)"`
}

// ConfigImportCmd is the "config import" subcommand.
type ConfigImportCmd struct {
	File string `arg:"" help:"YAML file, or - for stdin"`
}
