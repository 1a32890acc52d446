package location

import (
	"context"

	"github.com/kailas-cloud/zoto/internal/domain/geo"
)

// Provider is a source of device coordinates.
type Provider interface {
	Locate(ctx context.Context) (geo.Coordinates, error)
	Name() string
}
