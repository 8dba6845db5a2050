package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/filmcard"
	"github.com/fwojciec/filmcard/fs"
	"github.com/fwojciec/filmcard/goquery"
	filmhttp "github.com/fwojciec/filmcard/http"
	"github.com/fwojciec/filmcard/lookup"
	"github.com/fwojciec/filmcard/norm"
	"github.com/fwojciec/filmcard/rod"
	filmslog "github.com/fwojciec/filmcard/slog"
	"github.com/fwojciec/filmcard/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(). Overridden by --db.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Closers run on Close in reverse order.
	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && first == nil {
			first = err
		}
		m.DB = nil
	}
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("filmcard"),
		kong.Description("Look up film and series titles and render them as short text cards."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'filmcard --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FILMCARD_DB or --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Config = filmslog.NewLoggingConfigService(sqlite.NewConfigService(m.DB), deps.Logger)

	var flags *FetchFlags
	switch command := strings.Fields(kongCtx.Command())[0]; command {
	case "lookup":
		flags = &cli.Lookup.FetchFlags
	case "extract":
		flags = &cli.Extract.FetchFlags
	case "batch":
		flags = &cli.Batch.FetchFlags
	}
	if flags != nil {
		svc, err := m.newLookupService(cli, flags, deps)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", filmcard.ErrorMessage(err))
			return err
		}
		deps.Lookup = svc
	}

	return kongCtx.Run(deps)
}

// newLookupService wires the collaborators selected by the global and
// per-command flags.
func (m *Main) newLookupService(cli *CLI, flags *FetchFlags, deps *Dependencies) (*lookup.Service, error) {
	search, err := newSearchService(cli.Search, cli.SearchURL)
	if err != nil {
		return nil, err
	}

	var fetcher filmcard.Fetcher
	if flags.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(flags.Timeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return nil, err
		}
		fetcher = f
	} else {
		fetcher = filmhttp.NewFetcher(filmhttp.WithTimeout(flags.Timeout))
	}
	m.closers = append(m.closers, fetcher.Close)

	if flags.SaveDir != "" {
		archive := fs.NewArchive(fetcher, flags.SaveDir)
		archive.OnError = func(url string, err error) {
			deps.Logger.Warn("failed to save page", "url", url, "dir", flags.SaveDir, "err", err)
		}
		fetcher = archive
	}

	var limiter filmcard.HostLimiter
	if flags.Rate > 0 {
		limiter = lookup.NewHostLimiter(flags.Rate, 1)
	}

	return &lookup.Service{
		Search:     filmslog.NewLoggingSearchService(search, deps.Logger),
		Fetcher:    filmslog.NewLoggingFetcher(fetcher, deps.Logger),
		Parser:     goquery.NewParser(),
		Config:     deps.Config,
		Extractor:  filmcard.NewExtractor(norm.NewNormalizer()),
		Rules:      goquery.DefaultRules(),
		Matcher:    filmcard.DefaultTitleMatcher(),
		Limiter:    limiter,
		Logger:     deps.Logger,
		Timeout:    flags.Timeout,
		MaxResults: flags.MaxResults,
	}, nil
}

// newSearchService returns the named search provider. rss and searxng
// need an endpoint URL.
func newSearchService(name, endpoint string) (filmcard.SearchService, error) {
	switch name {
	case "duckduckgo", "":
		s := filmhttp.NewDuckDuckGoSearch(nil)
		if endpoint != "" {
			s.BaseURL = endpoint
		}
		return s, nil
	case "rss":
		if endpoint == "" {
			return nil, filmcard.Errorf(filmcard.EINVALID, "--search-url with a {searchTerms} template is required for rss search")
		}
		return filmhttp.NewRSSSearch(endpoint, nil), nil
	case "searxng":
		if endpoint == "" {
			return nil, filmcard.Errorf(filmcard.EINVALID, "--search-url is required for searxng search")
		}
		return filmhttp.NewSearxNGSearch(endpoint, nil), nil
	default:
		return nil, filmcard.Errorf(filmcard.EINVALID, "unknown search provider %q", name)
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "filmcard.db"
	}
	dir := filepath.Join(home, ".filmcard")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "filmcard.db")
}
