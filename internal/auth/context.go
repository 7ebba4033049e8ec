// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
)

// claimsContextKey is the key type for storing Claims in context.Context.
type claimsContextKey struct{}

// WithClaims returns a new context with the verified token claims attached.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, c)
}

// ClaimsFromContext retrieves the token claims from the context. The second
// return value is false when the request is unauthenticated.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsContextKey{}).(Claims)
	return c, ok
}
