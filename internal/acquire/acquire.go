// Package acquire turns uploaded documents, remote documents and pasted
// text into the single raw text string that clause extraction reads.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ppiankov/clausewise/internal/cache"
	"github.com/ppiankov/clausewise/internal/model"
)

// Input names the text sources for one extraction. Any combination may be
// empty; an entirely empty Input yields empty text.
type Input struct {
	Path   string // Local document (PDF, text, HTML)
	URL    string // Remote document
	Pasted string // Free-form text appended after the document text
	Sample bool   // Use the built-in sample in place of Pasted
}

// Text is the acquired raw text and a description of where it came from
type Text struct {
	Raw    string
	Source model.Source
}

// Acquirer reads documents and assembles raw text
type Acquirer struct {
	registry *Registry
	fetcher  *Fetcher
	cache    cache.Cache
}

// NewAcquirer creates an acquirer. A nil fetcher rejects URL input and a
// nil cache disables caching.
func NewAcquirer(fetcher *Fetcher, c cache.Cache) *Acquirer {
	if c == nil {
		c = cache.NopCache{}
	}
	return &Acquirer{
		registry: NewRegistry(),
		fetcher:  fetcher,
		cache:    c,
	}
}

// Acquire assembles raw text: document text first, then pasted text after
// a newline. Document read and extraction failures are returned as-is,
// wrapped with context.
func (a *Acquirer) Acquire(ctx context.Context, in Input) (*Text, error) {
	if in.Path != "" && in.URL != "" {
		return nil, errors.New("specify a document path or a URL, not both")
	}

	var raw strings.Builder
	src := model.Source{}

	switch {
	case in.Path != "":
		data, err := os.ReadFile(in.Path)
		if err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		src.Path = in.Path
		src.Subject = filepath.Base(in.Path)

		doc, err := a.documentText(filepath.Base(in.Path), "", data, &src)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", in.Path, err)
		}
		raw.WriteString(doc)

	case in.URL != "":
		if a.fetcher == nil {
			return nil, errors.New("remote documents are not enabled")
		}
		result, err := a.fetcher.Fetch(ctx, in.URL)
		if err != nil {
			return nil, err
		}
		src.URL = result.FinalURL
		src.Subject = result.Subject

		doc, err := a.documentText(urlPath(result.FinalURL), result.ContentType, result.Body, &src)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", in.URL, err)
		}
		raw.WriteString(doc)
	}

	pasted := in.Pasted
	if in.Sample {
		pasted = SampleText
		src.Sample = true
	}
	if pasted != "" {
		raw.WriteString("\n")
		raw.WriteString(pasted)
		src.Pasted = !in.Sample
	}

	if src.Subject == "" {
		switch {
		case src.Sample:
			src.Subject = "sample"
		case src.Pasted:
			src.Subject = "pasted text"
		default:
			src.Subject = "empty input"
		}
	}

	src.TextBytes = raw.Len()

	return &Text{Raw: raw.String(), Source: src}, nil
}

// documentText picks a format and extracts text, consulting the cache by
// content hash
func (a *Acquirer) documentText(name string, contentType string, data []byte, src *model.Source) (string, error) {
	format, err := a.registry.Find(name, contentType, data)
	if err != nil {
		return "", err
	}

	src.Format = format.Name()
	src.ContentHash = cache.ContentHash(data)
	key := cache.Key(format.Name(), src.ContentHash)

	if cached, found := a.cache.Get(key); found {
		log.Debug().Str("format", format.Name()).Str("hash", src.ContentHash).Msg("document text served from cache")
		src.FromCache = true
		return string(cached), nil
	}

	text, err := format.Extract(data)
	if err != nil {
		return "", err
	}

	if err := a.cache.Set(key, []byte(text), 0); err != nil {
		log.Warn().Err(err).Msg("failed to cache document text")
	}

	log.Debug().
		Str("format", format.Name()).
		Int("bytes", len(data)).
		Int("text_bytes", len(text)).
		Msg("extracted document text")

	return text, nil
}

// urlPath returns the path portion of a URL for extension matching
func urlPath(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return parsed.Path
}
