package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/domain/interfaces"
	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/openinvites/flamingo/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	credentialsCollection = "credentials"
	invitesCollection     = "invites"
)

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Probe the connection so bad project IDs or credentials fail at
	// startup rather than on the first webhook.
	_, err = client.Collection(credentialsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{client: client}, nil
}

// SaveCredential saves a workspace credential
func (f *Firestore) SaveCredential(ctx context.Context, cred *model.Credential) error {
	if cred == nil {
		return goerr.New("credential is nil")
	}
	if cred.TeamID == "" {
		return goerr.New("team ID is empty")
	}

	_, err := f.client.Collection(credentialsCollection).Doc(cred.TeamID.String()).Set(ctx, cred)
	if err != nil {
		return goerr.Wrap(err, "failed to save credential to firestore",
			goerr.V("teamID", cred.TeamID))
	}
	return nil
}

// GetCredential retrieves a workspace credential by team ID
func (f *Firestore) GetCredential(ctx context.Context, teamID types.TeamID) (*model.Credential, error) {
	if teamID == "" {
		return nil, goerr.New("team ID is empty")
	}

	doc, err := f.client.Collection(credentialsCollection).Doc(teamID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrCredentialNotFound, "no credential for team",
				goerr.V("teamID", teamID))
		}
		return nil, goerr.Wrap(err, "failed to get credential from firestore")
	}

	var cred model.Credential
	if err := doc.DataTo(&cred); err != nil {
		return nil, goerr.Wrap(err, "failed to decode credential")
	}
	return &cred, nil
}

// SaveInvite saves an invite record
func (f *Firestore) SaveInvite(ctx context.Context, invite *model.Invite) error {
	if invite == nil {
		return goerr.New("invite is nil")
	}
	if invite.ID == "" {
		return goerr.New("invite ID is empty")
	}

	_, err := f.client.Collection(invitesCollection).Doc(invite.ID.String()).Set(ctx, invite)
	if err != nil {
		return goerr.Wrap(err, "failed to save invite to firestore",
			goerr.V("inviteID", invite.ID))
	}
	return nil
}

// GetInvite retrieves an invite by ID
func (f *Firestore) GetInvite(ctx context.Context, id types.InviteID) (*model.Invite, error) {
	if id == "" {
		return nil, goerr.New("invite ID is empty")
	}

	doc, err := f.client.Collection(invitesCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrInviteNotFound, "no invite record",
				goerr.V("inviteID", id))
		}
		return nil, goerr.Wrap(err, "failed to get invite from firestore")
	}

	var invite model.Invite
	if err := doc.DataTo(&invite); err != nil {
		return nil, goerr.Wrap(err, "failed to decode invite")
	}
	return &invite, nil
}

// DeleteInvite removes an invite record
func (f *Firestore) DeleteInvite(ctx context.Context, id types.InviteID) error {
	if id == "" {
		return goerr.New("invite ID is empty")
	}

	_, err := f.client.Collection(invitesCollection).Doc(id.String()).Delete(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to delete invite from firestore",
			goerr.V("inviteID", id))
	}
	return nil
}

// UpdateInvite applies mutate inside a Firestore transaction so concurrent
// toggles on the same invite serialize instead of losing updates
func (f *Firestore) UpdateInvite(ctx context.Context, id types.InviteID, mutate func(*model.Invite) error) (*model.Invite, error) {
	if id == "" {
		return nil, goerr.New("invite ID is empty")
	}

	ref := f.client.Collection(invitesCollection).Doc(id.String())
	var updated *model.Invite

	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrInviteNotFound, "no invite record",
					goerr.V("inviteID", id))
			}
			return goerr.Wrap(err, "failed to get invite for update")
		}

		var invite model.Invite
		if err := doc.DataTo(&invite); err != nil {
			return goerr.Wrap(err, "failed to decode invite")
		}

		if err := mutate(&invite); err != nil {
			return err
		}

		if err := tx.Set(ref, &invite); err != nil {
			return goerr.Wrap(err, "failed to write invite")
		}

		updated = &invite
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Close closes the Firestore connection
func (f *Firestore) Close() error {
	return f.client.Close()
}
