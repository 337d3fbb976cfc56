package storage

import (
	"context"

	"youtube-stats/models"
)

// DatasetLoader is the interface any warehouse backend must satisfy. Load replaces
// the destination's contents with the dataset.
type DatasetLoader interface {
	Load(ctx context.Context, ds *models.Dataset) error
	Destination() string
	Close() error
}
