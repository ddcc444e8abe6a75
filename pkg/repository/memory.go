package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/domain/interfaces"
	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/openinvites/flamingo/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu          sync.RWMutex
	credentials map[types.TeamID]*model.Credential
	invites     map[types.InviteID]*model.Invite
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		credentials: make(map[types.TeamID]*model.Credential),
		invites:     make(map[types.InviteID]*model.Invite),
	}
}

// SaveCredential saves a workspace credential
func (m *Memory) SaveCredential(ctx context.Context, cred *model.Credential) error {
	if cred == nil {
		return goerr.New("credential is nil")
	}
	if cred.TeamID == "" {
		return goerr.New("team ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	credCopy := *cred
	m.credentials[cred.TeamID] = &credCopy
	return nil
}

// GetCredential retrieves a workspace credential by team ID
func (m *Memory) GetCredential(ctx context.Context, teamID types.TeamID) (*model.Credential, error) {
	if teamID == "" {
		return nil, goerr.New("team ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	cred, exists := m.credentials[teamID]
	if !exists {
		return nil, goerr.Wrap(model.ErrCredentialNotFound, "no credential for team",
			goerr.V("teamID", teamID))
	}

	credCopy := *cred
	return &credCopy, nil
}

// SaveInvite saves an invite record
func (m *Memory) SaveInvite(ctx context.Context, invite *model.Invite) error {
	if invite == nil {
		return goerr.New("invite is nil")
	}
	if invite.ID == "" {
		return goerr.New("invite ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.invites[invite.ID] = copyInvite(invite)
	return nil
}

// GetInvite retrieves an invite by ID
func (m *Memory) GetInvite(ctx context.Context, id types.InviteID) (*model.Invite, error) {
	if id == "" {
		return nil, goerr.New("invite ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	invite, exists := m.invites[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrInviteNotFound, "no invite record",
			goerr.V("inviteID", id))
	}

	return copyInvite(invite), nil
}

// DeleteInvite removes an invite record
func (m *Memory) DeleteInvite(ctx context.Context, id types.InviteID) error {
	if id == "" {
		return goerr.New("invite ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.invites, id)
	return nil
}

// UpdateInvite applies mutate under the write lock, serializing concurrent
// read-modify-write cycles on the same invite
func (m *Memory) UpdateInvite(ctx context.Context, id types.InviteID, mutate func(*model.Invite) error) (*model.Invite, error) {
	if id == "" {
		return nil, goerr.New("invite ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	invite, exists := m.invites[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrInviteNotFound, "no invite record",
			goerr.V("inviteID", id))
	}

	updated := copyInvite(invite)
	if err := mutate(updated); err != nil {
		return nil, err
	}

	m.invites[id] = copyInvite(updated)
	return updated, nil
}

// Close closes the repository (no-op for memory)
func (m *Memory) Close() error {
	return nil
}

// copyInvite deep-copies an invite so callers cannot mutate stored state
func copyInvite(invite *model.Invite) *model.Invite {
	inviteCopy := *invite
	inviteCopy.Attending = append([]types.SlackUserID(nil), invite.Attending...)
	return &inviteCopy
}
