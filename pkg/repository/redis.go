package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/domain/interfaces"
	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/openinvites/flamingo/pkg/domain/types"
	"github.com/redis/go-redis/v9"
)

// maxTxRetries bounds optimistic transaction retries under contention
const maxTxRetries = 8

// Redis implements Repository interface with Redis storage. Values are
// JSON-marshaled under per-entity key prefixes.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a new Redis repository and verifies the connection
func NewRedis(ctx context.Context, addr, password string, db int) (interfaces.Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis",
			goerr.V("addr", addr))
	}

	return &Redis{client: client}, nil
}

func credentialKey(teamID types.TeamID) string {
	return fmt.Sprintf("credential:%s", teamID)
}

func inviteKey(id types.InviteID) string {
	return fmt.Sprintf("invite:%s", id)
}

// SaveCredential saves a workspace credential
func (r *Redis) SaveCredential(ctx context.Context, cred *model.Credential) error {
	if cred == nil {
		return goerr.New("credential is nil")
	}
	if cred.TeamID == "" {
		return goerr.New("team ID is empty")
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal credential")
	}

	if err := r.client.Set(ctx, credentialKey(cred.TeamID), data, 0).Err(); err != nil {
		return goerr.Wrap(err, "failed to save credential",
			goerr.V("teamID", cred.TeamID))
	}
	return nil
}

// GetCredential retrieves a workspace credential by team ID
func (r *Redis) GetCredential(ctx context.Context, teamID types.TeamID) (*model.Credential, error) {
	if teamID == "" {
		return nil, goerr.New("team ID is empty")
	}

	data, err := r.client.Get(ctx, credentialKey(teamID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerr.Wrap(model.ErrCredentialNotFound, "no credential for team",
			goerr.V("teamID", teamID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get credential",
			goerr.V("teamID", teamID))
	}

	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal credential")
	}
	return &cred, nil
}

// SaveInvite saves an invite record
func (r *Redis) SaveInvite(ctx context.Context, invite *model.Invite) error {
	if invite == nil {
		return goerr.New("invite is nil")
	}
	if invite.ID == "" {
		return goerr.New("invite ID is empty")
	}

	data, err := json.Marshal(invite)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal invite")
	}

	if err := r.client.Set(ctx, inviteKey(invite.ID), data, 0).Err(); err != nil {
		return goerr.Wrap(err, "failed to save invite",
			goerr.V("inviteID", invite.ID))
	}
	return nil
}

// GetInvite retrieves an invite by ID
func (r *Redis) GetInvite(ctx context.Context, id types.InviteID) (*model.Invite, error) {
	if id == "" {
		return nil, goerr.New("invite ID is empty")
	}

	data, err := r.client.Get(ctx, inviteKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerr.Wrap(model.ErrInviteNotFound, "no invite record",
			goerr.V("inviteID", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get invite",
			goerr.V("inviteID", id))
	}

	var invite model.Invite
	if err := json.Unmarshal(data, &invite); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal invite")
	}
	return &invite, nil
}

// DeleteInvite removes an invite record
func (r *Redis) DeleteInvite(ctx context.Context, id types.InviteID) error {
	if id == "" {
		return goerr.New("invite ID is empty")
	}

	if err := r.client.Del(ctx, inviteKey(id)).Err(); err != nil {
		return goerr.Wrap(err, "failed to delete invite",
			goerr.V("inviteID", id))
	}
	return nil
}

// UpdateInvite applies mutate inside a WATCH/MULTI optimistic transaction.
// A concurrent write to the same key aborts the transaction and the cycle
// is retried, so toggles cannot lose updates.
func (r *Redis) UpdateInvite(ctx context.Context, id types.InviteID, mutate func(*model.Invite) error) (*model.Invite, error) {
	if id == "" {
		return nil, goerr.New("invite ID is empty")
	}

	key := inviteKey(id)
	var updated *model.Invite

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return goerr.Wrap(model.ErrInviteNotFound, "no invite record",
				goerr.V("inviteID", id))
		}
		if err != nil {
			return goerr.Wrap(err, "failed to get invite for update")
		}

		var invite model.Invite
		if err := json.Unmarshal(data, &invite); err != nil {
			return goerr.Wrap(err, "failed to unmarshal invite")
		}

		if err := mutate(&invite); err != nil {
			return err
		}

		buf, err := json.Marshal(&invite)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal invite")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, buf, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = &invite
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, goerr.New("invite update aborted by contention",
		goerr.V("inviteID", id),
		goerr.V("retries", maxTxRetries))
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}
