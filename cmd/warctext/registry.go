package main

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/dsullivan/warctext"
	"github.com/dsullivan/warctext/goquery"
	"github.com/dsullivan/warctext/htmltext"
	"github.com/dsullivan/warctext/htmltomarkdown"
	"github.com/dsullivan/warctext/readability"
	wslog "github.com/dsullivan/warctext/slog"
	"github.com/dsullivan/warctext/trafilatura"
)

// extractorRegistry maps processor names to backend constructors. The set is
// closed: an unknown name is a usage error, not a plugin lookup.
var extractorRegistry = map[string]func() warctext.TextExtractor{
	"trafilatura": func() warctext.TextExtractor { return trafilatura.NewExtractor() },
	"readability": func() warctext.TextExtractor { return readability.NewExtractor() },
	"goquery":     func() warctext.TextExtractor { return goquery.NewExtractor() },
	"html":        func() warctext.TextExtractor { return htmltext.NewExtractor() },
	"markdown":    func() warctext.TextExtractor { return htmltomarkdown.NewExtractor() },
}

// defaultProcessors is the fallback order when no --processor flag is given:
// article extraction first, then progressively cruder text recovery.
var defaultProcessors = []string{"trafilatura", "goquery", "html"}

// buildChain assembles the extractor chain for the named processors. With
// verbose set, each backend is wrapped in a logging decorator.
func buildChain(names []string, verbose bool, logger *slog.Logger) (*warctext.Chain, error) {
	if len(names) == 0 {
		names = defaultProcessors
	}

	extractors := make([]warctext.TextExtractor, 0, len(names))
	for _, name := range names {
		construct, ok := extractorRegistry[name]
		if !ok {
			return nil, warctext.Errorf(warctext.ECONFIG, "unknown processor %q (available: %s)", name, strings.Join(processorNames(), ", "))
		}
		ex := construct()
		if verbose {
			ex = wslog.NewLoggingExtractor(ex, name, logger)
		}
		extractors = append(extractors, ex)
	}
	return warctext.NewChain(extractors...), nil
}

func processorNames() []string {
	names := make([]string, 0, len(extractorRegistry))
	for name := range extractorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
