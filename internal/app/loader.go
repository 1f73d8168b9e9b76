package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/state"
)

// Source performs one movie load.
type Source interface {
	Load(ctx context.Context) (catalog.LoadResult, error)
}

// StartLoader launches the single load of a mount in a background goroutine
// and returns immediately. The result reaches the store only while the mount
// is active. The returned channel closes when the goroutine exits.
func StartLoader(mount *catalog.Mount, store *state.Store, source Source, logger *zap.Logger) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	store.Begin(mount.ID())

	go func() {
		defer close(done)
		res, err := source.Load(mount.Context())
		applied := mount.Run(func() {
			store.Update(res.Movies, err)
		})
		if !applied {
			logger.Debug("mount closed; discarding load result",
				zap.String("mount_id", mount.ID()),
				zap.Int("count", len(res.Movies)),
				zap.Error(err),
			)
		}
	}()
	return done
}
