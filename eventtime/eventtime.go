// Package eventtime extracts event dates from free-form user text.
package eventtime

import (
	"log/slog"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/br"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/olebedev/when/rules/ru"
)

// maxLookahead discards parser guesses unreasonably far out, such as a year
// read from an unrelated number in the event text.
const maxLookahead = 31 * 24 * time.Hour

var parser = newParser()

func newParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(ru.All...)
	w.Add(br.All...)
	w.Add(common.All...)
	return w
}

// Parse finds a date and time in free-form text relative to now. It returns
// nil when the text holds no recognizable date, one already in the past, or
// one more than a month away.
func Parse(text string, now time.Time) *time.Time {
	result, err := parser.Parse(text, now)
	if err != nil {
		slog.Debug("eventtime: Failed to parse text", "error", err, "text", text)
		return nil
	}
	if result == nil {
		return nil
	}

	delta := result.Time.Sub(now)
	if delta < 0 {
		slog.Info("eventtime: Parsed time is in the past, skipping", "parsed", result.Time)
		return nil
	}
	if delta > maxLookahead {
		slog.Info("eventtime: Parsed time is suspiciously far away, skipping", "parsed", result.Time)
		return nil
	}

	parsed := result.Time
	return &parsed
}
