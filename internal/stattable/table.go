package stattable

import (
	"net/url"
	"sort"
	"strings"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
)

// Options select which period and season of a summary to project, and how to order the rows.
type Options struct {
	Season     string
	Postseason bool
	SortKey    string
	Descending bool
}

// Header is a column header together with its current sort state.
type Header struct {
	Column
	Sorted     bool
	Descending bool
}

// Cell is one rendered value. Href is set when the cell links to another page.
type Cell struct {
	Text    string
	Href    string
	Numeric bool
}

// Table is the projected, formatted view of one period of a stat summary.
type Table struct {
	Set        string
	Season     string
	Postseason bool
	Headers    []Header
	Rows       [][]Cell
}

// PlayerHref is the page path of the player identified by slug.
func PlayerHref(slug string) string {
	return "/players/" + url.PathEscape(slug)
}

// TeamHref is the page path of the team identified by slug.
func TeamHref(slug string) string {
	return "/teams/" + url.PathEscape(slug)
}

// Build projects summary through set. It returns false, and no table, when the summary is absent,
// the selected period container is missing or has no seasons, or the requested season is not present.
func Build(set ColumnSet, summary *stats.Summary, opts Options) (*Table, bool) {
	seasons, ok := summary.Period(opts.Postseason)
	if !ok {
		return nil, false
	}
	rows, season, ok := seasons.Project(opts.Season)
	if !ok {
		return nil, false
	}

	sortKey := ""
	if opts.SortKey != "" && set.Has(opts.SortKey) {
		sortKey = opts.SortKey
		sortRows(rows, sortKey, opts.Descending)
	}

	t := &Table{
		Set:        set.Name,
		Season:     season,
		Postseason: opts.Postseason,
		Headers:    make([]Header, 0, len(set.Columns)),
		Rows:       make([][]Cell, 0, len(rows)),
	}
	for _, c := range set.Columns {
		t.Headers = append(t.Headers, Header{
			Column:     c,
			Sorted:     c.Key == sortKey,
			Descending: c.Key == sortKey && opts.Descending,
		})
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, renderRow(set.Columns, r))
	}
	return t, true
}

func renderRow(columns []Column, row stats.Row) []Cell {
	cells := make([]Cell, 0, len(columns))
	for _, c := range columns {
		cell := Cell{Text: c.Format.Apply(row, c.Key), Numeric: c.Numeric()}
		if c.Link == LinkPlayer {
			if slug, ok := row.Slug(); ok {
				cell.Href = PlayerHref(slug)
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

func sortRows(rows []stats.Row, key string, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		_, aok := rows[i].Value(key)
		_, bok := rows[j].Value(key)
		// Missing values sink to the bottom in both directions.
		if !aok || !bok {
			return aok && !bok
		}
		cmp := compareField(rows[i], rows[j], key)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareField(a, b stats.Row, key string) int {
	af, aNum := a.Float(key)
	bf, bNum := b.Float(key)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as, _ := a.String(key)
	bs, _ := b.String(key)
	return strings.Compare(as, bs)
}
