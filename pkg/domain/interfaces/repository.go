package interfaces

import (
	"context"

	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/openinvites/flamingo/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	// Credential operations
	SaveCredential(ctx context.Context, cred *model.Credential) error
	GetCredential(ctx context.Context, teamID types.TeamID) (*model.Credential, error)

	// Invite operations
	SaveInvite(ctx context.Context, invite *model.Invite) error
	GetInvite(ctx context.Context, id types.InviteID) (*model.Invite, error)
	DeleteInvite(ctx context.Context, id types.InviteID) error

	// UpdateInvite applies mutate to the invite under a serialized
	// read-modify-write, so concurrent toggles on the same invite cannot
	// lose updates. Returns the invite after mutation.
	UpdateInvite(ctx context.Context, id types.InviteID, mutate func(*model.Invite) error) (*model.Invite, error)

	// Close closes the repository connection
	Close() error
}
