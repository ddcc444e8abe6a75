package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrInviteNotFound     = goerr.New("invite not found")
	ErrCredentialNotFound = goerr.New("credential not found")
)
