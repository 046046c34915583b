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

package statemachine

// InvitationState is the lifecycle state of a map invitation.
type InvitationState int

const (
	InvitationPending   InvitationState = 0
	InvitationAccepted  InvitationState = 1
	InvitationRejected  InvitationState = 2
	InvitationExpired   InvitationState = 3
	InvitationCancelled InvitationState = 4
)

// NewInvitationStateMachine builds the invitation lifecycle table:
// pending is the only non-terminal state; accepted, rejected, expired and
// cancelled never transition further.
func NewInvitationStateMachine() *StateMachine[InvitationState] {
	sm := NewWithState(InvitationPending)
	sm.Allow(InvitationPending,
		InvitationAccepted,
		InvitationRejected,
		InvitationExpired,
		InvitationCancelled,
	)
	return sm
}
