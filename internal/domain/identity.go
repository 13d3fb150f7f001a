package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const MaxSessionIDLen = 128

var (
	ErrNoIdentity       = errors.New("session id or auth required")
	ErrSessionIDTooLong = errors.New("session id must be at most 128 bytes")
)

// Principal is the authenticated user a request acts as.
type Principal struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Phone  string
	Role   string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == "admin"
}

// CartOwner identifies a cart. When both fields are set the user wins and
// the session cart is merged into it.
type CartOwner struct {
	UserID    *uuid.UUID
	SessionID string
}

func NewCartOwner(p *Principal, sessionID string) (CartOwner, error) {
	o := CartOwner{SessionID: strings.TrimSpace(sessionID)}
	if p != nil {
		id := p.UserID
		o.UserID = &id
	}
	if o.UserID == nil && o.SessionID == "" {
		return CartOwner{}, ErrNoIdentity
	}
	if len(o.SessionID) > MaxSessionIDLen {
		return CartOwner{}, ErrSessionIDTooLong
	}
	return o, nil
}

func (o CartOwner) IsUser() bool {
	return o.UserID != nil
}

func (o CartOwner) Key() string {
	if o.UserID != nil {
		return "user:" + o.UserID.String()
	}
	return "session:" + o.SessionID
}
