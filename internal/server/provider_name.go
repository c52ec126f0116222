package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/blaseball-reference/internal/config"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
	"github.com/preston-bernstein/blaseball-reference/internal/providers/blaseball"
	"github.com/preston-bernstein/blaseball-reference/internal/providers/fixture"
)

// normalizeProviderName names the provider in metrics and logs. The built provider wins over the
// configured name so an unknown PROVIDER that fell back to the fixture is reported as "fixture".
func normalizeProviderName(raw string, provider providers.StatsProvider) string {
	switch provider.(type) {
	case *fixture.Provider:
		return config.ProviderFixture
	case *blaseball.Client:
		return config.ProviderAPI
	}
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
