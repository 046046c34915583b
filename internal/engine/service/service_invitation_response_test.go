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

package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/go-atlas/atlas/internal/engine/errs"
	"github.com/go-atlas/atlas/internal/engine/model"
)

type responseFixture struct {
	svc      *InvitationResponseService
	invRepo  *fakeInvRepo
	userRepo *fakeUserRepo
	roleRepo *fakeRoleRepo
	token    string
}

// newResponseFixture seeds one pending invitation for e@x.com with the given
// role, inviter "owner".
func newResponseFixture(t *testing.T, role model.Role, users ...*model.User) *responseFixture {
	t.Helper()
	invRepo := newFakeInvRepo()
	userRepo := newFakeUserRepo(users...)
	roleRepo := newFakeRoleRepo()

	inv := &model.MapInvitation{
		InvitationId: "inv-1",
		MapId:        "m1",
		Email:        "e@x.com",
		Role:         role,
		Token:        "tok-1",
		InvitedBy:    "owner",
		Status:       model.InvitationStatusPending,
		ExpiresAt:    time.Now().Add(model.InvitationTTL),
	}
	if err := invRepo.CreateGuarded(inv, time.Now()); err != nil {
		t.Fatal(err)
	}
	return &responseFixture{
		svc:      NewInvitationResponseService(invRepo, userRepo, roleRepo, &fakeNotifier{}),
		invRepo:  invRepo,
		userRepo: userRepo,
		roleRepo: roleRepo,
		token:    inv.Token,
	}
}

func inviteeUser() *model.User {
	return &model.User{UserId: "invitee", Email: "e@x.com", IsEnabled: 1}
}

func TestRespond_AcceptWithExistingAccount(t *testing.T) {
	f := newResponseFixture(t, model.RoleEditorAll, inviteeUser())
	p := &model.Principal{UserId: "invitee", Email: "E@X.COM"} // case differs

	result, err := f.svc.Respond(f.token, model.RespondAccept, nil, p)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if result.UserId != "invitee" || result.AccountCreated {
		t.Errorf("result = %+v, want existing account invitee", result)
	}
	if result.Invitation.Status != model.InvitationStatusAccepted {
		t.Errorf("status = %d, want accepted", result.Invitation.Status)
	}
	ra, err := f.roleRepo.Get("m1", "invitee")
	if err != nil {
		t.Fatalf("role assignment missing: %v", err)
	}
	if ra.Role != model.RoleEditorAll {
		t.Errorf("granted role = %s, want editor_all", ra.Role)
	}
}

func TestRespond_WrongUser(t *testing.T) {
	tests := []struct {
		name string
		p    *model.Principal
	}{
		{"anonymous with existing account", nil},
		{"different account", &model.Principal{UserId: "other", Email: "other@x.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newResponseFixture(t, model.RoleViewer, inviteeUser())
			_, err := f.svc.Respond(f.token, model.RespondAccept, nil, tt.p)
			if !errors.Is(err, errs.ErrWrongUser) {
				t.Errorf("Respond error = %v, want ErrWrongUser", err)
			}
			// nothing was mutated
			inv, _ := f.invRepo.GetByToken(f.token)
			if inv.Status != model.InvitationStatusPending {
				t.Errorf("invitation status = %d, want still pending", inv.Status)
			}
		})
	}
}

func TestRespond_RegistrationRequired(t *testing.T) {
	tests := []struct {
		name string
		reg  *model.RegistrationData
	}{
		{"no registration data", nil},
		{"missing password", &model.RegistrationData{Nickname: "Eve"}},
		{"missing nickname", &model.RegistrationData{Password: "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newResponseFixture(t, model.RoleViewer)
			_, err := f.svc.Respond(f.token, model.RespondAccept, tt.reg, nil)
			if !errors.Is(err, errs.ErrRegistrationRequired) {
				t.Errorf("Respond error = %v, want ErrRegistrationRequired", err)
			}
		})
	}
}

func TestRespond_AcceptProvisionsAccount(t *testing.T) {
	f := newResponseFixture(t, model.RoleContributor)
	reg := &model.RegistrationData{Nickname: "Eve", Password: "s3cret"}

	result, err := f.svc.Respond(f.token, model.RespondAccept, reg, nil)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !result.AccountCreated || result.UserId == "" {
		t.Fatalf("result = %+v, want provisioned account", result)
	}

	user, err := f.userRepo.GetUserByEmail("e@x.com")
	if err != nil {
		t.Fatalf("provisioned account missing: %v", err)
	}
	if user.EmailVerified != 1 {
		t.Error("provisioned account email not pre-verified")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")) != nil {
		t.Error("stored password hash does not match registration password")
	}
	if _, err := f.roleRepo.Get("m1", user.UserId); err != nil {
		t.Errorf("invited role not granted: %v", err)
	}
}

func TestRespond_RejectWithoutAccount(t *testing.T) {
	f := newResponseFixture(t, model.RoleViewer)

	result, err := f.svc.Respond(f.token, model.RespondReject, nil, nil)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if result.Invitation.Status != model.InvitationStatusRejected {
		t.Errorf("status = %d, want rejected", result.Invitation.Status)
	}
	if result.UserId != "" || result.AccountCreated {
		t.Errorf("result = %+v, rejecting must not create an account", result)
	}
	if _, err := f.userRepo.GetUserByEmail("e@x.com"); err == nil {
		t.Error("rejecting created an account")
	}
}

func TestRespond_InvalidWhenExpiredOrTerminal(t *testing.T) {
	f := newResponseFixture(t, model.RoleViewer, inviteeUser())
	f.invRepo.force(f.token, time.Now().Add(-time.Hour))
	p := &model.Principal{UserId: "invitee", Email: "e@x.com"}

	if _, err := f.svc.Respond(f.token, model.RespondAccept, nil, p); !errors.Is(err, errs.ErrInvitationInvalid) {
		t.Errorf("Respond(expired) error = %v, want ErrInvitationInvalid", err)
	}

	f = newResponseFixture(t, model.RoleViewer, inviteeUser())
	if _, err := f.invRepo.Cancel("inv-1", "owner"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Respond(f.token, model.RespondAccept, nil, p); !errors.Is(err, errs.ErrInvitationInvalid) {
		t.Errorf("Respond(cancelled) error = %v, want ErrInvitationInvalid", err)
	}
}

func TestRespond_UnknownToken(t *testing.T) {
	f := newResponseFixture(t, model.RoleViewer)
	if _, err := f.svc.Respond("no-such-token", model.RespondAccept, nil, nil); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Respond(unknown token) error = %v, want ErrNotFound", err)
	}
}

// Two concurrent accepts on the same token: exactly one wins the conditional
// transition, the other reports the benign race error, and the role is
// granted exactly once.
func TestRespond_ConcurrentAcceptIdempotent(t *testing.T) {
	f := newResponseFixture(t, model.RoleEditorAll, inviteeUser())
	p := &model.Principal{UserId: "invitee", Email: "e@x.com"}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Respond(f.token, model.RespondAccept, nil, p)
		}(i)
	}
	wg.Wait()

	var ok, raced int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, errs.ErrAlreadyProcessed):
			raced++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || raced != 1 {
		t.Fatalf("got %d successes and %d raced, want exactly 1 and 1", ok, raced)
	}

	ras, _ := f.roleRepo.ListByMap("m1")
	if len(ras) != 1 {
		t.Fatalf("role granted %d times, want exactly once", len(ras))
	}
}

// A concurrent cancel and accept on the same token: the status-guarded
// updates let exactly one land, and a lost accept never grants the role.
func TestRespond_RacesWithCancel(t *testing.T) {
	f := newResponseFixture(t, model.RoleViewer, inviteeUser())
	p := &model.Principal{UserId: "invitee", Email: "e@x.com"}

	var wg sync.WaitGroup
	var respondErr error
	var cancelRows int64
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, respondErr = f.svc.Respond(f.token, model.RespondAccept, nil, p)
	}()
	go func() {
		defer wg.Done()
		cancelRows, _ = f.invRepo.Cancel("inv-1", "owner")
	}()
	wg.Wait()

	if respondErr == nil && cancelRows == 1 {
		t.Fatal("both the accept and the cancel claimed the transition")
	}
	if respondErr != nil {
		if !errors.Is(respondErr, errs.ErrAlreadyProcessed) && !errors.Is(respondErr, errs.ErrInvitationInvalid) {
			t.Fatalf("losing accept error = %v, want already-processed or invalid", respondErr)
		}
		if ras, _ := f.roleRepo.ListByMap("m1"); len(ras) != 0 {
			t.Fatal("role granted despite lost accept")
		}
	}
}
