// Package session drives the interactive search, select, resolve and display
// loop against the character API.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/raphaelgruber/mortydex/internal/metrics"
	"github.com/raphaelgruber/mortydex/internal/models"
)

// Sentinel errors that end a session. All of them map to exit status 1.
var (
	ErrTerminated      = errors.New("empty search term, terminating")
	ErrInvalidInput    = errors.New("invalid input")
	ErrIndexOutOfRange = errors.New("index out of range")
)

const (
	firstPrompt  = "Enter (part of) a Rick & Morty character name: "
	nextPrompt   = "\nEnter (part of) another Rick & Morty character name: "
	selectPrompt = "\nSelect the index of the character you are interested in: "
)

// API is the subset of the HTTP client the session needs.
type API interface {
	SearchCharacters(ctx context.Context, term string) ([]models.Character, error)
	EpisodeName(ctx context.Context, episodeURL string) (string, error)
}

// Resolver turns episode URLs into episode titles. The result has the same
// length and order as urls. Any failure aborts the whole resolution.
type Resolver func(ctx context.Context, urls []string) ([]string, error)

// Sequential returns a Resolver that fetches one episode at a time.
func Sequential(api API) Resolver {
	return func(ctx context.Context, urls []string) ([]string, error) {
		titles := make([]string, 0, len(urls))
		for _, u := range urls {
			title, err := api.EpisodeName(ctx, u)
			if err != nil {
				return nil, fmt.Errorf("episode %s: %w", u, err)
			}
			titles = append(titles, title)
		}
		return titles, nil
	}
}

// Options configures a Session. Zero values fall back to sensible defaults.
type Options struct {
	In      io.Reader
	Out     io.Writer
	Logger  *slog.Logger
	Metrics *metrics.Collector
	Resolve Resolver

	// Styled enables terminal styling of the details report.
	Styled bool
}

// Session is one interactive run. It is not safe for concurrent use.
type Session struct {
	api     API
	in      *bufio.Reader
	out     io.Writer
	logger  *slog.Logger
	metrics *metrics.Collector
	resolve Resolver
	styled  bool
}

// New creates a session reading from opts.In and writing to opts.Out.
func New(api API, opts Options) *Session {
	s := &Session{
		api:     api,
		in:      bufio.NewReader(opts.In),
		out:     opts.Out,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		resolve: opts.Resolve,
		styled:  opts.Styled,
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.resolve == nil {
		s.resolve = Sequential(api)
	}
	return s
}

// Run loops until the user enters an empty search term or something fails.
// It returns nil only when a search produced no results.
func (s *Session) Run(ctx context.Context) error {
	defer s.logStats()

	prompt := firstPrompt
	for {
		fmt.Fprint(s.out, prompt)

		term, err := s.readLine()
		if err != nil {
			return fmt.Errorf("read search term: %w", err)
		}
		if term == "" {
			return ErrTerminated
		}

		done, err := s.cycle(ctx, term)
		if err != nil || done {
			return err
		}

		prompt = nextPrompt
	}
}

// cycle runs one search/select/resolve/display round. done is true when the
// session should end cleanly.
func (s *Session) cycle(ctx context.Context, term string) (done bool, err error) {
	logger := s.logger.With("cycle", uuid.NewString())
	logger.Info("searching characters", "term", term)

	characters, err := s.api.SearchCharacters(ctx, term)
	if err != nil {
		return false, fmt.Errorf("search characters: %w", err)
	}

	if len(characters) == 0 {
		fmt.Fprintf(s.out, "No results found for: %s\n", term)
		return true, nil
	}

	s.printResults(characters)

	fmt.Fprint(s.out, selectPrompt)
	idx, err := s.readIndex(len(characters))
	if err != nil {
		return false, err
	}

	selected := characters[idx]
	logger.Info("character selected", "index", idx, "name", selected.Name, "episodes", len(selected.Episodes))

	titles, err := s.resolve(ctx, selected.Episodes)
	if err != nil {
		return false, fmt.Errorf("resolve episodes: %w", err)
	}
	selected = selected.WithEpisodes(titles)

	s.printDetails(selected)
	s.logStats()

	return false, nil
}

// readLine reads one line without its terminator. End of input is reported
// as an empty line.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readIndex reads a selection index in [0, count). Anything after the first
// token on the line is discarded.
func (s *Session) readIndex(count int) (int, error) {
	line, err := s.readLine()
	if err != nil {
		return 0, fmt.Errorf("read index: %w", err)
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: no index given", ErrInvalidInput)
	}

	idx, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, fields[0])
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, idx, count)
	}

	return idx, nil
}

func (s *Session) logStats() {
	if s.metrics == nil {
		return
	}
	s.logger.Debug("session stats", "metrics", s.metrics.Snapshot())
}
