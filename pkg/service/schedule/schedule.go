package schedule

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DefaultDuration is applied when a title carries a start time but no end
const DefaultDuration = time.Hour

// Window is a start/end pair extracted from an invite title
type Window struct {
	Start time.Time
	End   time.Time
}

// Parser extracts a schedule window from free-text invite titles
type Parser struct {
	w *when.Parser
}

// NewParser creates a parser with the English and common rule sets
func NewParser() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w}
}

// Parse extracts a schedule window from the title, relative to base.
// Parsing is best effort: an unparseable or ambiguous title yields no
// window and never an error. When the title names a start but no end,
// the end is start plus DefaultDuration.
func (p *Parser) Parse(title string, base time.Time) (*Window, bool) {
	first, err := p.w.Parse(title, base)
	if err != nil || first == nil {
		return nil, false
	}

	window := &Window{
		Start: first.Time,
		End:   first.Time.Add(DefaultDuration),
	}

	// Look for an explicit end time in the text after the first match,
	// e.g. "wednesday 5-6pm" or "from 5pm to 7pm".
	rest := title[first.Index+len(first.Text):]
	if second, err := p.w.Parse(rest, first.Time); err == nil && second != nil {
		if second.Time.After(first.Time) {
			window.End = second.Time
		}
	}

	return window, true
}

// FormatInstant renders an instant in the compact UTC form used inside
// calendar deep links (YYYYMMDD'T'HHMMSS'Z').
func FormatInstant(t time.Time) string {
	return t.UTC().Format("20060102T150405") + "Z"
}

// FormatRange renders the window as a calendar-link dates parameter
func (w *Window) FormatRange() string {
	return FormatInstant(w.Start) + "/" + FormatInstant(w.End)
}
