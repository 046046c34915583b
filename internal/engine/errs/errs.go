// Copyright 2025 Atlas Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errs defines the closed error taxonomy of the sharing and
// invitation engine. Services return these values (optionally wrapped with
// %w) so callers can branch with errors.Is instead of matching message text.
package errs

import "errors"

var (
	// ErrForbidden the caller lacks rights for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound the resource is absent, or must be indistinguishable from
	// absent for the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRole the role is not part of the closed role enumeration.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidTarget the target's role is immutable (map owner).
	ErrInvalidTarget = errors.New("invalid target")

	// ErrSelfActionForbidden the acting principal tried to ban themself or
	// remove their own role assignment.
	ErrSelfActionForbidden = errors.New("self action forbidden")

	// ErrLastEditorProtected the mutation would leave the map without any
	// full editor.
	ErrLastEditorProtected = errors.New("last editor protected")

	// ErrDuplicateInvitation a pending, unexpired invitation already exists
	// for this map and email.
	ErrDuplicateInvitation = errors.New("duplicate invitation")

	// ErrInvitationInvalid the invitation is expired or already terminal.
	ErrInvitationInvalid = errors.New("invitation invalid")

	// ErrAlreadyProcessed a concurrent responder processed the invitation
	// first. Benign: callers must not surface it as a failure.
	ErrAlreadyProcessed = errors.New("already processed")

	// ErrRegistrationRequired the invitee has no account and must supply
	// registration data to accept.
	ErrRegistrationRequired = errors.New("registration required")

	// ErrWrongUser the authenticated principal's email does not match the
	// invitee email.
	ErrWrongUser = errors.New("wrong user")
)

var domainErrs = []error{
	ErrForbidden,
	ErrNotFound,
	ErrInvalidRole,
	ErrInvalidTarget,
	ErrSelfActionForbidden,
	ErrLastEditorProtected,
	ErrDuplicateInvitation,
	ErrInvitationInvalid,
	ErrAlreadyProcessed,
	ErrRegistrationRequired,
	ErrWrongUser,
}

// IsDomainErr reports whether err belongs to the taxonomy above, as opposed
// to an infrastructure failure.
func IsDomainErr(err error) bool {
	for _, e := range domainErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
