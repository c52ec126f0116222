package stattable

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
)

// Column set names in the catalog.
const (
	SetBatting      = "batting"
	SetPitching     = "pitching"
	SetTeamBatting  = "team-batting"
	SetTeamPitching = "team-pitching"
)

// Link is a cell rendering rule that turns a value into a hyperlink.
type Link string

const (
	LinkNone Link = ""
	// LinkPlayer links to the player page identified by the row's slug.
	LinkPlayer Link = "player"
)

// Column describes one displayable field of a stat row.
type Column struct {
	Key    string
	Label  string
	Title  string
	Format Format
	Link   Link
}

// Numeric reports whether cells in this column hold numbers (used for alignment and sorting hints).
func (c Column) Numeric() bool {
	return c.Format != FormatText
}

// ColumnSet is an ordered list of columns for one stat category.
type ColumnSet struct {
	Name    string
	Columns []Column
}

// Has reports whether the set contains a column with the given accessor key.
func (s ColumnSet) Has(key string) bool {
	for _, c := range s.Columns {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Catalog holds every column set known to the site.
type Catalog struct {
	sets map[string]ColumnSet
}

// Set returns the named column set.
func (c *Catalog) Set(name string) (ColumnSet, bool) {
	if c == nil {
		return ColumnSet{}, false
	}
	s, ok := c.sets[name]
	return s, ok
}

// PlayerSetName returns the column set used on player pages for a stat group.
func PlayerSetName(group players.Group) (string, bool) {
	switch group {
	case players.GroupBatting:
		return SetBatting, true
	case players.GroupPitching:
		return SetPitching, true
	default:
		return "", false
	}
}

// TeamSetName returns the column set used on team pages for a stat group.
func TeamSetName(group players.Group) (string, bool) {
	switch group {
	case players.GroupBatting:
		return SetTeamBatting, true
	case players.GroupPitching:
		return SetTeamPitching, true
	default:
		return "", false
	}
}

//go:embed columns.yaml
var defaultCatalogYAML []byte

var defaultCatalog = mustLoadCatalog(defaultCatalogYAML)

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func mustLoadCatalog(data []byte) *Catalog {
	c, err := LoadCatalog(data)
	if err != nil {
		panic(fmt.Sprintf("stattable: embedded catalog: %v", err))
	}
	return c
}

type yamlColumn struct {
	Key    string `yaml:"key"`
	Label  string `yaml:"label"`
	Title  string `yaml:"title"`
	Format string `yaml:"format"`
	Link   string `yaml:"link"`
}

type yamlSet struct {
	Lead   []yamlColumn `yaml:"lead"`
	Common string       `yaml:"common"`
}

type yamlCatalog struct {
	Common map[string][]yamlColumn `yaml:"common"`
	Sets   map[string]yamlSet      `yaml:"sets"`
}

// LoadCatalog parses and validates a YAML column catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var dto yamlCatalog
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(dto.Sets) == 0 {
		return nil, errors.New("catalog defines no sets")
	}

	catalog := &Catalog{sets: make(map[string]ColumnSet, len(dto.Sets))}
	for name, set := range dto.Sets {
		defs := append([]yamlColumn{}, set.Lead...)
		if set.Common != "" {
			common, ok := dto.Common[set.Common]
			if !ok {
				return nil, fmt.Errorf("set %s: unknown common group %q", name, set.Common)
			}
			defs = append(defs, common...)
		}

		cs, err := mapSet(name, defs)
		if err != nil {
			return nil, err
		}
		catalog.sets[name] = cs
	}
	return catalog, nil
}

func mapSet(name string, defs []yamlColumn) (ColumnSet, error) {
	if len(defs) == 0 {
		return ColumnSet{}, fmt.Errorf("set %s: no columns", name)
	}

	cs := ColumnSet{Name: name, Columns: make([]Column, 0, len(defs))}
	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		field := fmt.Sprintf("set %s: columns[%d]", name, i)
		key := strings.TrimSpace(d.Key)
		if key == "" {
			return ColumnSet{}, fmt.Errorf("%s: key is required", field)
		}
		if seen[key] {
			return ColumnSet{}, fmt.Errorf("%s: duplicate key %q", field, key)
		}
		seen[key] = true

		format, err := parseFormat(d.Format)
		if err != nil {
			return ColumnSet{}, fmt.Errorf("%s: %w", field, err)
		}
		link, err := parseLink(d.Link)
		if err != nil {
			return ColumnSet{}, fmt.Errorf("%s: %w", field, err)
		}

		label := d.Label
		if label == "" {
			label = key
		}
		cs.Columns = append(cs.Columns, Column{
			Key:    key,
			Label:  label,
			Title:  d.Title,
			Format: format,
			Link:   link,
		})
	}
	return cs, nil
}

func parseLink(raw string) (Link, error) {
	switch Link(strings.TrimSpace(raw)) {
	case LinkNone:
		return LinkNone, nil
	case LinkPlayer:
		return LinkPlayer, nil
	default:
		return LinkNone, fmt.Errorf("unknown link rule %q", raw)
	}
}
