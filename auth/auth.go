// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotOwner    = errors.New("not the election owner")
	ErrInvalidUser = errors.New("invalid user name")
)

// GenerateID creates a random identifier for elections, ballots and snapshots
func GenerateID() string {
	return uuid.NewString()
}

// HashVoterKey derives the stable, opaque key a voter's ballot is stored under.
// The same user and salt always produce the same key, so re-voting replaces
// the earlier ballot without storing the user name.
func HashVoterKey(user, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strings.TrimSpace(user)))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

// ValidateUser checks a user name before it is used as owner or candidate
func ValidateUser(user string) error {
	user = strings.TrimSpace(user)
	if len(user) < 2 || len(user) > 50 {
		return ErrInvalidUser
	}
	return nil
}

// ValidateOwner checks that user created the election
func ValidateOwner(owner, user string) error {
	if !hmac.Equal([]byte(owner), []byte(user)) {
		return ErrNotOwner
	}
	return nil
}
