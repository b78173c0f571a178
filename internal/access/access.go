// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package access decides whether a request may reach the admin panel.
// The decision is pure; the HTTP middleware applies it.
package access

// Decision is the outcome of an admin access check.
type Decision int

const (
	// Allow lets the request through to the admin handler.
	Allow Decision = iota
	// RedirectLogin sends the visitor to the login page. This is the
	// answer for anonymous visitors, authenticated users without the
	// admin role, and any state we could not verify. Non-admins are
	// never told the panel exists.
	RedirectLogin
	// Redirect2FA sends an authenticated admin to finish two-factor
	// verification before the panel opens.
	Redirect2FA
)

// State is what the guard knows about the current request.
type State struct {
	// Authenticated is true when a session maps to a known user.
	Authenticated bool
	// IsAdmin is true only when the role check completed and found an
	// admin role row.
	IsAdmin bool
	// RoleCheckFailed is true when the role lookup errored. Failure to
	// verify is treated as no role.
	RoleCheckFailed bool
	// TwoFADone is true once the session passed TOTP verification.
	TwoFADone bool
	// TwoFARequired is true when the deployment enforces TOTP.
	TwoFARequired bool
}

// Decide maps the request state to a decision. Anything short of a
// verified admin falls through to the login redirect.
func Decide(s State) Decision {
	if !s.Authenticated {
		return RedirectLogin
	}
	if s.RoleCheckFailed || !s.IsAdmin {
		return RedirectLogin
	}
	if s.TwoFARequired && !s.TwoFADone {
		return Redirect2FA
	}
	return Allow
}
