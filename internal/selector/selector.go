// Package selector parses the text passed to --list into one of a fixed set
// of record selectors.
package selector

import (
	"fmt"
	"time"

	"github.com/nhle/todo/internal/model"
)

// Selector is a classified list filter. The set of implementations is
// closed: All, Done, Open, OnDate, Between and Within.
type Selector interface {
	fmt.Stringer
	isSelector()
}

// All selects every record.
type All struct{}

// Done selects records marked as done.
type Done struct{}

// Open selects records not yet done.
type Open struct{}

// OnDate selects records due on a single calendar day.
type OnDate struct {
	Date time.Time
}

// Between selects records due on any day from From through To, inclusive.
type Between struct {
	From time.Time
	To   time.Time
}

// Unit is the step of a relative offset.
type Unit int

const (
	Day Unit = iota
	Week
)

// Within selects open records due no later than Count units from now.
type Within struct {
	Count int
	Unit  Unit
}

func (All) isSelector()     {}
func (Done) isSelector()    {}
func (Open) isSelector()    {}
func (OnDate) isSelector()  {}
func (Between) isSelector() {}
func (Within) isSelector()  {}

func (All) String() string  { return keywordAll }
func (Done) String() string { return keywordDone }
func (Open) String() string { return keywordOpen }

func (s OnDate) String() string {
	return s.Date.Format(model.DateLayout)
}

func (s Between) String() string {
	return s.From.Format(model.DateLayout) + "-" + s.To.Format(model.DateLayout)
}

func (s Within) String() string {
	return fmt.Sprintf("%d%c", s.Count, s.Unit.suffix())
}

// Duration returns the span covered by the offset.
func (s Within) Duration() time.Duration {
	return time.Duration(s.Count) * s.Unit.Duration()
}

// Duration returns the length of one unit.
func (u Unit) Duration() time.Duration {
	if u == Week {
		return 7 * 24 * time.Hour
	}
	return 24 * time.Hour
}

func (u Unit) suffix() byte {
	if u == Week {
		return 'w'
	}
	return 'd'
}

func (u Unit) String() string {
	if u == Week {
		return "week"
	}
	return "day"
}
