package stats

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// CompareSeasonKeys orders season keys: integer keys first, compared numerically, then every other
// key compared lexicographically.
func CompareSeasonKeys(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	aNum, bNum := aErr == nil, bErr == nil
	switch {
	case aNum && bNum:
		return cmp.Compare(ai, bi)
	case aNum:
		return -1
	case bNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// SeasonLabel renders a zero-based season key as the number shown to readers ("0" -> "1").
// Non-numeric keys are returned unchanged. The label is for display only; keys in rows, queries and
// JSON documents stay zero-based.
func SeasonLabel(key string) string {
	n, err := strconv.Atoi(key)
	if err != nil {
		return key
	}
	return strconv.Itoa(n + 1)
}

// Seasons maps a season key to the rows recorded for that season.
type Seasons map[string][]Row

// Keys returns the season keys in ascending season order.
func (s Seasons) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, CompareSeasonKeys)
	return keys
}

// Latest returns the most recent season key.
func (s Seasons) Latest() (string, bool) {
	if len(s) == 0 {
		return "", false
	}
	var latest string
	first := true
	for k := range s {
		if first || CompareSeasonKeys(k, latest) > 0 {
			latest = k
			first = false
		}
	}
	return latest, true
}

// Project returns copies of the rows for season, each annotated with the season key.
// An empty season selects the latest one. The resolved key is returned; ok is false when
// there is nothing to project.
func (s Seasons) Project(season string) (rows []Row, resolved string, ok bool) {
	if season == "" {
		latest, found := s.Latest()
		if !found {
			return nil, "", false
		}
		season = latest
	}

	source, found := s[season]
	if !found {
		return nil, season, false
	}

	rows = make([]Row, 0, len(source))
	for _, r := range source {
		projected := r.clone()
		projected[FieldSeason] = season
		rows = append(rows, projected)
	}
	return rows, season, true
}
