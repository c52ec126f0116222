package stats

// Summary is the precomputed statistical summary of an entity, split into regular season and
// postseason periods. A nil map means the container was missing from the document.
type Summary struct {
	Seasons     Seasons `json:"seasons"`
	Postseasons Seasons `json:"postseasons"`
}

// Period returns the regular-season or postseason mapping. ok is false when the summary or the
// container is absent, or the container holds no seasons.
func (s *Summary) Period(postseason bool) (Seasons, bool) {
	if s == nil {
		return nil, false
	}
	seasons := s.Seasons
	if postseason {
		seasons = s.Postseasons
	}
	if len(seasons) == 0 {
		return nil, false
	}
	return seasons, true
}

// HasPostseason reports whether any postseason period is present.
func (s *Summary) HasPostseason() bool {
	_, ok := s.Period(true)
	return ok
}
