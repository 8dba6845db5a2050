// Package lookup runs a single title lookup end to end: it resolves a
// free-text query to a title page, fetches and parses it, extracts and
// assembles the record, renders it for the destination and delivers the
// lines.
package lookup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/filmcard"
	"github.com/google/uuid"
)

// DefaultTimeout bounds each collaborator call when Service.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// DefaultSitePrefix restricts searches to title pages.
const DefaultSitePrefix = "http://www.imdb.com/title/"

// User-visible failure messages.
const (
	msgUnavailable = "Search is not available."
	msgNotFound    = "Couldn't find a title."
	msgDocument    = "Couldn't read the title page."
)

// Service performs lookups. The zero value is not usable: Fetcher, Parser,
// Extractor and Rules are required. A nil Search makes every Lookup fail
// with EUNAVAILABLE. A nil Config renders with the built-in defaults.
//
// A Service holds no per-invocation state and is safe for concurrent use
// if its collaborators are.
type Service struct {
	Search    filmcard.SearchService
	Fetcher   filmcard.Fetcher
	Parser    filmcard.DocumentParser
	Config    filmcard.ConfigService
	Extractor *filmcard.Extractor
	Rules     filmcard.RuleTable
	Matcher   *filmcard.TitleMatcher
	Limiter   filmcard.HostLimiter
	Logger    *slog.Logger

	// Timeout bounds each collaborator call. Defaults to DefaultTimeout.
	Timeout time.Duration

	// MaxResults is passed to the search collaborator.
	MaxResults int

	// Headers are sent with every fetch. Defaults to
	// filmcard.DefaultHeaders().
	Headers http.Header

	// SitePrefix is prepended to queries as a site: restriction.
	// Defaults to DefaultSitePrefix.
	SitePrefix string
}

// Request is one user request.
type Request struct {
	Query       string
	Destination string
}

// Result describes a successful lookup.
type Result struct {
	ID            string
	URL           string
	Record        *filmcard.Record
	Lines         []string
	ConfigVersion uint64
}

// state names the stage an invocation is in, for logging.
type state string

const (
	stateResolve  state = "resolve_candidate"
	stateFetch    state = "fetch"
	stateParse    state = "parse"
	stateExtract  state = "extract"
	stateAssemble state = "assemble"
	stateRender   state = "render"
	stateDeliver  state = "deliver"
)

// invocation carries what one Lookup or ExtractURL call owns.
type invocation struct {
	id     string
	dest   string
	logger *slog.Logger
	cfg    *filmcard.OutputConfig
}

func (inv *invocation) enter(s state, args ...any) {
	inv.logger.Debug("lookup state", append([]any{"state", string(s)}, args...)...)
}

// Lookup resolves req.Query to a title page and delivers the rendered
// record to req.Destination.
//
// On failure exactly one notification is sent through d, no lines are
// delivered, and the error is returned with code EUNAVAILABLE, ENOTFOUND or
// EDOCUMENT. The configuration snapshot is read before any network call.
func (s *Service) Lookup(ctx context.Context, req Request, d filmcard.Deliverer) (*Result, error) {
	inv, err := s.begin(ctx, req.Destination)
	if err != nil {
		return nil, s.fail(ctx, d, req.Destination, s.logger(), err)
	}
	inv.logger.Debug("lookup started", "query", req.Query)

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, s.fail(ctx, d, inv.dest, inv.logger, filmcard.Errorf(filmcard.EINVALID, "A search query is required."))
	}

	inv.enter(stateResolve)
	ref, err := s.resolve(ctx, inv, query)
	if err != nil {
		return nil, s.fail(ctx, d, inv.dest, inv.logger, err)
	}

	return s.run(ctx, inv, ref, d)
}

// ExtractURL skips candidate resolution and renders the title page at ref.
func (s *Service) ExtractURL(ctx context.Context, ref, destination string, d filmcard.Deliverer) (*Result, error) {
	inv, err := s.begin(ctx, destination)
	if err != nil {
		return nil, s.fail(ctx, d, destination, s.logger(), err)
	}
	inv.logger.Debug("extract started", "url", ref)

	return s.run(ctx, inv, ref, d)
}

// ExtractDocument renders an already retrieved page. ref is recorded as the
// page URL.
func (s *Service) ExtractDocument(ctx context.Context, page []byte, ref, destination string, d filmcard.Deliverer) (*Result, error) {
	inv, err := s.begin(ctx, destination)
	if err != nil {
		return nil, s.fail(ctx, d, destination, s.logger(), err)
	}
	inv.logger.Debug("extract started", "url", ref, "bytes", len(page))

	rec, err := s.parseAndExtract(inv, page, ref)
	if err != nil {
		return nil, s.fail(ctx, d, inv.dest, inv.logger, err)
	}
	return s.finish(ctx, inv, ref, rec, d)
}

// begin assigns an invocation ID and takes the configuration snapshot.
func (s *Service) begin(ctx context.Context, destination string) (*invocation, error) {
	inv := &invocation{
		id:   uuid.NewString(),
		dest: destination,
	}
	inv.logger = s.logger().With("invocation", inv.id, "destination", destination)

	if s.Config == nil {
		inv.cfg = filmcard.ResolveConfig(destination, nil)
		return inv, nil
	}

	cfg, err := s.Config.Snapshot(ctx, destination)
	if err != nil {
		inv.logger.Error("config snapshot failed", "err", err)
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "Configuration is not available.")
	}
	inv.cfg = cfg
	return inv, nil
}

// resolve searches for query and selects the first title page result.
func (s *Service) resolve(ctx context.Context, inv *invocation, query string) (string, error) {
	if s.Search == nil {
		return "", filmcard.Errorf(filmcard.EUNAVAILABLE, msgUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	results, err := s.Search.Search(ctx, "site:"+s.sitePrefix()+" "+query, filmcard.SearchOptions{
		Destination: inv.dest,
		MaxResults:  s.MaxResults,
	})
	if err != nil {
		inv.logger.Warn("search failed", "provider", s.Search.Name(), "err", err)
		return "", filmcard.Errorf(filmcard.EUNAVAILABLE, msgUnavailable)
	}

	ref, ok := s.matcher().SelectCandidate(results)
	if !ok {
		inv.logger.Debug("no candidate", "results", len(results))
		return "", filmcard.Errorf(filmcard.ENOTFOUND, msgNotFound)
	}
	return ref, nil
}

// run fetches ref and carries the invocation through to delivery.
func (s *Service) run(ctx context.Context, inv *invocation, ref string, d filmcard.Deliverer) (*Result, error) {
	inv.enter(stateFetch, "url", ref)
	page, err := s.fetch(ctx, inv, ref)
	if err != nil {
		return nil, s.fail(ctx, d, inv.dest, inv.logger, err)
	}

	rec, err := s.parseAndExtract(inv, page, ref)
	if err != nil {
		return nil, s.fail(ctx, d, inv.dest, inv.logger, err)
	}
	return s.finish(ctx, inv, ref, rec, d)
}

func (s *Service) fetch(ctx context.Context, inv *invocation, ref string) ([]byte, error) {
	if s.Fetcher == nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "Fetching is not available.")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	if s.Limiter != nil {
		if u, err := url.Parse(ref); err == nil && u.Host != "" {
			if err := s.Limiter.Wait(ctx, u.Host); err != nil {
				inv.logger.Warn("rate limit wait aborted", "host", u.Host, "err", err)
				return nil, filmcard.Errorf(filmcard.EDOCUMENT, msgDocument)
			}
		}
	}

	page, err := s.Fetcher.Fetch(ctx, ref, s.headers())
	if err != nil {
		inv.logger.Warn("fetch failed", "url", ref, "err", err)
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, msgDocument)
	}
	return page, nil
}

func (s *Service) parseAndExtract(inv *invocation, page []byte, ref string) (*filmcard.Record, error) {
	if s.Parser == nil || s.Extractor == nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "Extraction is not available.")
	}

	inv.enter(stateParse, "bytes", len(page))
	doc, err := s.Parser.Parse(bytes.NewReader(page))
	if err != nil {
		inv.logger.Warn("parse failed", "url", ref, "err", err)
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, msgDocument)
	}

	inv.enter(stateExtract)
	ex := *s.Extractor
	ex.OnAnomaly = func(te *filmcard.TransformError) {
		inv.logger.Warn("field extraction anomaly", "field", string(te.Field), "selector", te.Selector, "err", te.Err)
		if s.Extractor.OnAnomaly != nil {
			s.Extractor.OnAnomaly(te)
		}
	}
	rec := ex.Extract(doc, s.Rules)

	inv.enter(stateAssemble, "fields", rec.Len())
	return filmcard.Assemble(rec, ref), nil
}

// finish renders rec and delivers the lines in order.
func (s *Service) finish(ctx context.Context, inv *invocation, ref string, rec *filmcard.Record, d filmcard.Deliverer) (*Result, error) {
	inv.enter(stateRender, "config_version", inv.cfg.Version)
	lines := inv.cfg.Render(rec)
	s.logGaps(inv, rec)

	inv.enter(stateDeliver, "lines", len(lines))
	for _, line := range lines {
		if err := d.Deliver(ctx, inv.dest, line); err != nil {
			inv.logger.Error("delivery failed", "err", err)
			return nil, fmt.Errorf("delivering line: %w", err)
		}
	}

	inv.logger.Debug("lookup finished", "url", ref, "lines", len(lines))
	return &Result{
		ID:            inv.id,
		URL:           ref,
		Record:        rec,
		Lines:         lines,
		ConfigVersion: inv.cfg.Version,
	}, nil
}

// logGaps reports templates skipped for a missing field or format.
func (s *Service) logGaps(inv *invocation, rec *filmcard.Record) {
	if !inv.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, names := range inv.cfg.Order {
		for _, name := range names {
			format, ok := inv.cfg.Formats[name]
			if !ok {
				inv.logger.Debug("template skipped", "template", name, "reason", "unknown template")
				continue
			}
			if _, ok := filmcard.RenderTemplate(format, rec); ok {
				continue
			}
			var missing []string
			for _, field := range filmcard.Placeholders(format) {
				if _, ok := rec.Lookup(field); !ok {
					missing = append(missing, field)
				}
			}
			if len(missing) == 0 {
				inv.logger.Debug("template skipped", "template", name, "reason", "malformed format")
				continue
			}
			inv.logger.Debug("template skipped", "template", name, "reason", "missing field", "fields", missing)
		}
	}
}

// fail sends the single user-visible notification for err and returns it.
// Errors without an application code are reported generically.
func (s *Service) fail(ctx context.Context, d filmcard.Deliverer, destination string, logger *slog.Logger, err error) error {
	var appErr *filmcard.Error
	if !errors.As(err, &appErr) {
		logger.Error("lookup failed", "err", err)
	}
	logger.Debug("lookup state", "state", "failed", "code", filmcard.ErrorCode(err))

	if nerr := d.Notify(ctx, destination, filmcard.ErrorMessage(err)); nerr != nil {
		logger.Error("notification failed", "err", nerr)
	}
	return err
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (s *Service) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

func (s *Service) headers() http.Header {
	if s.Headers != nil {
		return s.Headers
	}
	return filmcard.DefaultHeaders()
}

func (s *Service) sitePrefix() string {
	if s.SitePrefix != "" {
		return s.SitePrefix
	}
	return DefaultSitePrefix
}

func (s *Service) matcher() *filmcard.TitleMatcher {
	if s.Matcher != nil {
		return s.Matcher
	}
	return filmcard.DefaultTitleMatcher()
}
