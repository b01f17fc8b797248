// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "painel-mockbackend"

// sessionClaims binds a token to a user and a device fingerprint.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID      int    `json:"uid"`
	Fingerprint string `json:"fp"`
}

var (
	errTokenExpired = errors.New("token expired")
	errTokenInvalid = errors.New("token invalid")
)

type signer struct {
	secret []byte
	now    func() time.Time
}

func (k *signer) issue(u *User, fingerprint string, ttl time.Duration) (string, error) {
	now := k.now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			ID:        strconv.FormatInt(now.UnixNano(), 36),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    tokenIssuer,
		},
		UserID:      u.ID,
		Fingerprint: fingerprint,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(k.secret)
}

// parse validates signature and expiry against the server clock.
func (k *signer) parse(raw string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	keyFunc := func(*jwt.Token) (any, error) { return k.secret, nil }
	token, err := jwt.ParseWithClaims(raw, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(k.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, errTokenInvalid
	}
	if !token.Valid {
		return nil, errTokenInvalid
	}
	return claims, nil
}

// remaining returns the whole seconds left before expiry, never negative.
func (k *signer) remaining(c *sessionClaims) int {
	if c.ExpiresAt == nil {
		return 0
	}
	left := int(c.ExpiresAt.Time.Sub(k.now()).Seconds())
	if left < 0 {
		return 0
	}
	return left
}
