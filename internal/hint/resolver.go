package hint

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// DefaultWordCap is the longest hint, in words, shown to a player.
const DefaultWordCap = 12

// DefaultTimeout bounds a remote hint call.
const DefaultTimeout = 4 * time.Second

// Where a resolved hint came from.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Source produces hint text for a level.
type Source interface {
	Hint(ctx context.Context, level pattern.Level) (string, error)
}

// Result is a resolved hint.
type Result struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Options configures a Resolver.
type Options struct {
	Timeout time.Duration
	WordCap int
	Generic []string
	Logger  *log.Logger
}

// Resolver prefers a remote Source and falls back to Local.
type Resolver struct {
	remote  Source
	timeout time.Duration
	wordCap int
	generic map[string]struct{}
	log     *log.Logger
}

// NewResolver creates a resolver. A nil remote always answers locally.
func NewResolver(remote Source, opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.WordCap < 1 {
		opts.WordCap = DefaultWordCap
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	generic := make(map[string]struct{}, len(opts.Generic))
	for _, phrase := range opts.Generic {
		generic[normalizePhrase(phrase)] = struct{}{}
	}
	return &Resolver{
		remote:  remote,
		timeout: opts.Timeout,
		wordCap: opts.WordCap,
		generic: generic,
		log:     logger.WithPrefix("hint"),
	}
}

// Resolve returns a hint for the level. It never fails: network errors,
// timeouts, empty replies and generic phrasings all yield the local hint.
func (r *Resolver) Resolve(ctx context.Context, level pattern.Level) Result {
	local := Result{Text: Local(level), Source: SourceLocal}
	if r == nil || r.remote == nil {
		return local
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.remote.Hint(ctx, level)
	if err != nil {
		r.log.Warn("remote hint failed, using local", "level", level.ID, "err", err)
		return local
	}
	text := Trim(raw, r.wordCap)
	if text == "" {
		r.log.Debug("remote hint empty, using local", "level", level.ID)
		return local
	}
	if _, ok := r.generic[normalizePhrase(text)]; ok {
		r.log.Debug("remote hint too generic, using local", "level", level.ID, "hint", text)
		return local
	}
	return Result{Text: text, Source: SourceRemote}
}

// Trim strips surrounding quotes and caps the hint at wordCap words,
// marking a cut with "...".
func Trim(s string, wordCap int) string {
	cleaned := strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
	words := strings.Fields(cleaned)
	if wordCap < 1 || len(words) <= wordCap {
		return cleaned
	}
	return strings.Join(words[:wordCap], " ") + "..."
}

func normalizePhrase(s string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(s)), ".!? ")
}
