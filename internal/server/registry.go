package server

import (
	"context"

	"github.com/preston-bernstein/blaseball-reference/internal/http/handlers"
)

// Registry defines the page registry behavior needed by the server.
type Registry interface {
	handlers.Site
	LoadIndex(ctx context.Context) error
	Start(ctx context.Context)
	Stop()
}
