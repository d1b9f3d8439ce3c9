// Package present renders todos as single console lines.
package present

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

const ellipsis = "..."

// Widths bounds the rendered length of the free-text columns.
type Widths struct {
	Topic       int
	Description int
}

// DefaultWidths returns the standard column limits.
func DefaultWidths() Widths {
	return Widths{
		Topic:       model.DefaultTopicWidth,
		Description: model.DefaultDescriptionWidth,
	}
}

// Printer writes todo lines to an output stream.
type Printer struct {
	out    io.Writer
	widths Widths
	theme  theme.Theme
}

// NewPrinter returns a Printer writing to out.
func NewPrinter(out io.Writer, widths Widths) *Printer {
	return &Printer{out: out, widths: widths, theme: theme.New(out)}
}

// Line formats a todo as
//
//	0001 | Buy milk             | 01.01.2030 | False | Get milk
//
// with topic and description cut by Truncate.
func (p *Printer) Line(todo model.Todo) string {
	topic := Truncate(todo.Topic, p.widths.Topic)
	topic += strings.Repeat(" ", max(0, p.widths.Topic-len([]rune(topic))))

	sep := p.theme.Separator.Render(" | ")
	return strings.Join([]string{
		p.theme.ID.Render(fmt.Sprintf("%04d", todo.ID)),
		p.theme.Topic.Render(topic),
		p.theme.DueDate.Render(todo.DueDate.Format(model.DateLayout)),
		p.theme.DoneStyle(todo.Done).Render(fmt.Sprintf("%-5s", boolText(todo.Done))),
		p.theme.Description.Render(Truncate(todo.Description, p.widths.Description)),
	}, sep)
}

// Print writes one todo line.
func (p *Printer) Print(todo model.Todo) error {
	_, err := fmt.Fprintln(p.out, p.Line(todo))
	return err
}

// PrintAll writes every todo of seq and returns how many lines were written.
// It stops at the first error from seq or from the writer.
func (p *Printer) PrintAll(seq iter.Seq2[model.Todo, error]) (int, error) {
	n := 0
	for todo, err := range seq {
		if err != nil {
			return n, err
		}
		if err := p.Print(todo); err != nil {
			return n, fmt.Errorf("writing todo %d: %w", todo.ID, err)
		}
		n++
	}
	return n, nil
}

// Truncate returns s unchanged when it has at most limit characters.
// Otherwise it keeps the first limit-3 characters and appends "...".
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	keep := max(0, limit-len(ellipsis))
	return string(r[:keep]) + ellipsis
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
