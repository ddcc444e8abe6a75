package usecase

import "time"

// Test-only hooks

// SetExchange swaps the OAuth exchange function
func (o *OAuth) SetExchange(fn exchangeFunc) {
	o.exchange = fn
}

// SetNow swaps the clock used for schedule parsing and legacy recovery
func (u *Invite) SetNow(fn func() time.Time) {
	u.now = fn
}
