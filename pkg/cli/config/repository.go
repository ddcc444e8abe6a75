package config

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/openinvites/flamingo/pkg/domain/interfaces"
	"github.com/openinvites/flamingo/pkg/repository"
)

// ConfigureRepository picks the repository backend: Firestore when a
// project is set, otherwise Redis when an address is set, otherwise
// in-memory storage.
func ConfigureRepository(ctx context.Context, fs *Firestore, rd *Redis) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	if fs.IsConfigured() {
		return repository.NewFirestore(ctx, fs.ProjectID, fs.DatabaseID)
	}

	if rd.IsConfigured() {
		return repository.NewRedis(ctx, rd.Addr, rd.Password, rd.DB)
	}

	logger.Warn("Using memory storage; credentials and invites will be lost on shutdown")
	return repository.NewMemory(), nil
}
