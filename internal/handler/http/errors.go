// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karchin

package http

import "errors"

// Sentinel errors used by the authentication middleware when reading the
// session cookie. Callers can match against them with [errors.Is].
var (
	// ErrMissingSessionCookie is returned by the auth middleware when the
	// incoming request carries no session cookie at all.
	ErrMissingSessionCookie = errors.New("missing session cookie")

	// ErrEmptySessionToken is returned when the session cookie is present
	// but its value is an empty string.
	ErrEmptySessionToken = errors.New("empty session token")
)
