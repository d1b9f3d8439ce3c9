package selector

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/nhle/todo/internal/model"
)

const (
	keywordAll  = "all"
	keywordDone = "done"
	keywordOpen = "open"
)

var (
	// ErrUnrecognized is returned when the text matches none of the
	// selector forms.
	ErrUnrecognized = errors.New("unrecognized filter")

	// ErrInvertedRange is returned for a date range whose start falls after
	// its end. It wraps ErrUnrecognized.
	ErrInvertedRange = fmt.Errorf("%w: range start is after range end", ErrUnrecognized)
)

// Grammar holds the compiled patterns for the non-keyword selector forms.
type Grammar struct {
	Date   *regexp.Regexp
	Range  *regexp.Regexp
	Offset *regexp.Regexp
}

// DefaultGrammar returns the dd.mm.yyyy based grammar.
func DefaultGrammar() Grammar {
	const date = `\d{2}\.\d{2}\.\d{4}`
	return Grammar{
		Date:   regexp.MustCompile(`^` + date + `$`),
		Range:  regexp.MustCompile(`^(` + date + `)-(` + date + `)$`),
		Offset: regexp.MustCompile(`^(\d{1,2})([dw])$`),
	}
}

// Parser classifies selector text against a Grammar.
type Parser struct {
	grammar Grammar
}

// NewParser returns a Parser using g.
func NewParser(g Grammar) Parser {
	return Parser{grammar: g}
}

var defaultParser = NewParser(DefaultGrammar())

// Parse classifies text using the default grammar.
func Parse(text string) (Selector, error) {
	return defaultParser.Parse(text)
}

// Parse classifies text. Keywords are tried first, then a single date, a
// date range and finally a relative offset.
func (p Parser) Parse(text string) (Selector, error) {
	switch text {
	case keywordAll:
		return All{}, nil
	case keywordDone:
		return Done{}, nil
	case keywordOpen:
		return Open{}, nil
	}

	if p.grammar.Date.MatchString(text) {
		d, err := parseDate(text)
		if err != nil {
			return nil, err
		}
		return OnDate{Date: d}, nil
	}

	if m := p.grammar.Range.FindStringSubmatch(text); m != nil {
		from, err := parseDate(m[1])
		if err != nil {
			return nil, err
		}
		to, err := parseDate(m[2])
		if err != nil {
			return nil, err
		}
		if from.After(to) {
			return nil, fmt.Errorf("%w: %q", ErrInvertedRange, text)
		}
		return Between{From: from, To: to}, nil
	}

	if m := p.grammar.Offset.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnrecognized, text)
		}
		unit := Day
		if m[2] == "w" {
			unit = Week
		}
		return Within{Count: n, Unit: unit}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnrecognized, text)
}

// parseDate parses a dd.mm.yyyy date at midnight UTC.
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrUnrecognized, s)
	}
	return d, nil
}
