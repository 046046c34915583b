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

import "testing"

func TestInvitationStateMachine_PendingTransitions(t *testing.T) {
	sm := NewInvitationStateMachine()

	if sm.Initial() != InvitationPending {
		t.Errorf("expected initial state pending, got %v", sm.Initial())
	}

	for _, to := range []InvitationState{
		InvitationAccepted, InvitationRejected, InvitationExpired, InvitationCancelled,
	} {
		if !sm.CanTransit(InvitationPending, to) {
			t.Errorf("expected pending -> %v to be allowed", to)
		}
	}
}

func TestInvitationStateMachine_TerminalStates(t *testing.T) {
	sm := NewInvitationStateMachine()

	terminals := []InvitationState{
		InvitationAccepted, InvitationRejected, InvitationExpired, InvitationCancelled,
	}
	for _, from := range terminals {
		if !sm.IsTerminal(from) {
			t.Errorf("expected %v to be terminal", from)
		}
		for _, to := range []InvitationState{
			InvitationPending, InvitationAccepted, InvitationRejected,
			InvitationExpired, InvitationCancelled,
		} {
			if sm.CanTransit(from, to) {
				t.Errorf("expected %v -> %v to be rejected", from, to)
			}
		}
	}
}

func TestInvitationStateMachine_TransitTo(t *testing.T) {
	sm := NewInvitationStateMachine()

	if err := sm.TransitTo(InvitationAccepted); err != nil {
		t.Fatalf("TransitTo(accepted) error = %v", err)
	}
	if sm.Current() != InvitationAccepted {
		t.Errorf("expected current state accepted, got %v", sm.Current())
	}

	// terminal states never transition further
	if err := sm.TransitTo(InvitationRejected); err == nil {
		t.Error("expected error transitioning out of a terminal state")
	}
}
