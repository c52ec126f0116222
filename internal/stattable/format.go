package stattable

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
)

// Format is a cell formatting rule.
type Format string

// FormatSeason shows a zero-based season key one-based ("1" renders "2"). It is for display only:
// Table.Season and the season field of the underlying row keep the raw key, so JSON readers of a
// page document see zero-based seasons.
const (
	FormatText     Format = "text"
	FormatInt      Format = "int"
	FormatAvg      Format = "avg"
	FormatDecimal1 Format = "decimal1"
	FormatDecimal2 Format = "decimal2"
	FormatSeason   Format = "season"
)

func parseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case "":
		return FormatText, nil
	case FormatText, FormatInt, FormatAvg, FormatDecimal1, FormatDecimal2, FormatSeason:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q", raw)
	}
}

// Apply formats the field key of row. Absent fields render blank; values that are not
// numeric render verbatim whatever the rule.
func (f Format) Apply(row stats.Row, key string) string {
	text, ok := row.String(key)
	if !ok {
		return ""
	}

	switch f {
	case FormatSeason:
		return stats.SeasonLabel(text)
	case FormatText, "":
		return text
	}

	n, ok := row.Float(key)
	if !ok {
		return text
	}
	switch f {
	case FormatInt:
		return strconv.FormatFloat(math.Round(n), 'f', 0, 64)
	case FormatAvg:
		return formatAverage(n)
	case FormatDecimal1:
		return strconv.FormatFloat(n, 'f', 1, 64)
	case FormatDecimal2:
		return strconv.FormatFloat(n, 'f', 2, 64)
	default:
		return text
	}
}

// formatAverage renders rate stats the way box scores do: three places, no leading zero.
func formatAverage(n float64) string {
	s := strconv.FormatFloat(n, 'f', 3, 64)
	switch {
	case strings.HasPrefix(s, "0."):
		return s[1:]
	case strings.HasPrefix(s, "-0."):
		return "-" + s[2:]
	default:
		return s
	}
}
