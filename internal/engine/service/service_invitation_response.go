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
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/go-atlas/atlas/internal/engine/errs"
	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/internal/engine/notify"
	"github.com/go-atlas/atlas/internal/engine/repo"
	"github.com/go-atlas/atlas/pkg/id"
	"github.com/go-atlas/atlas/pkg/log"
)

// InvitationResponseService orchestrates an invitee's accept or reject.
// The flow is strictly ordered: token lookup, validity check, account
// resolution (with on-the-fly provisioning on accept), the conditional status
// transition, the role grant, then the best-effort inviter notification.
// Failures before the transition leave the invitation untouched; a
// provisioned account deliberately survives a lost transition race.
type InvitationResponseService struct {
	invRepo  repo.IInvitationRepository
	userRepo repo.IUserRepository
	roleRepo repo.IRoleAssignmentRepository
	notifier notify.INotifier
	now      func() time.Time
}

func NewInvitationResponseService(invRepo repo.IInvitationRepository, userRepo repo.IUserRepository,
	roleRepo repo.IRoleAssignmentRepository, notifier notify.INotifier) *InvitationResponseService {
	return &InvitationResponseService{
		invRepo:  invRepo,
		userRepo: userRepo,
		roleRepo: roleRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

// RespondResult reports the outcome of a response, including the account the
// role was granted to on accept.
type RespondResult struct {
	Invitation *model.InvitationResp `json:"invitation"`
	UserId     string                `json:"userId,omitempty"`
	// AccountCreated is set when accepting provisioned a new account.
	AccountCreated bool `json:"accountCreated,omitempty"`
}

// Respond processes the invitee's decision for the invitation addressed by
// token. p is nil for an anonymous caller.
func (irs *InvitationResponseService) Respond(token string, action model.RespondAction,
	reg *model.RegistrationData, p *model.Principal) (*RespondResult, error) {

	if action != model.RespondAccept && action != model.RespondReject {
		return nil, fmt.Errorf("unknown invitation action %q", action)
	}

	inv, err := irs.invRepo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if inv.Terminal() || inv.Expired(irs.now()) {
		return nil, errs.ErrInvitationInvalid
	}

	user, created, err := irs.resolveAccount(inv, action, reg, p)
	if err != nil {
		return nil, err
	}

	toStatus := model.InvitationStatusAccepted
	if action == model.RespondReject {
		toStatus = model.InvitationStatusRejected
	}
	rows, err := irs.invRepo.Transition(inv.Token, toStatus)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost the race to a concurrent responder or a cancellation. The
		// just-created account stays; it is a useful artifact on its own.
		return nil, errs.ErrAlreadyProcessed
	}
	inv.Status = toStatus

	result := &RespondResult{Invitation: model.ToInvitationResp(inv), AccountCreated: created}
	if user != nil {
		result.UserId = user.UserId
	}

	if action == model.RespondAccept {
		// The invitation itself is the authorization, so the grant bypasses
		// the owner-only mutation guard.
		if err := irs.roleRepo.Upsert(inv.MapId, user.UserId, inv.Role); err != nil {
			log.Errorw("failed to grant invited role",
				"mapId", inv.MapId, "userId", user.UserId, "role", inv.Role, "err", err)
			return nil, err
		}
	}

	irs.notifyInviter(inv, action)
	return result, nil
}

// resolveAccount maps the invitee email to an account. An existing account
// must belong to the authenticated caller; a missing one is provisioned on
// accept when registration data is supplied. Rejecting never creates an
// account.
func (irs *InvitationResponseService) resolveAccount(inv *model.MapInvitation, action model.RespondAction,
	reg *model.RegistrationData, p *model.Principal) (user *model.User, created bool, err error) {

	existing, err := irs.userRepo.GetUserByEmail(inv.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if existing != nil {
		if p == nil || !strings.EqualFold(p.Email, inv.Email) {
			return nil, false, errs.ErrWrongUser
		}
		return existing, false, nil
	}

	if action == model.RespondReject {
		return nil, false, nil
	}
	if !reg.Complete() {
		return nil, false, errs.ErrRegistrationRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}
	user = model.NewUserFromInvite(id.GetUUID(), inv.Email, string(hash), reg.Nickname)
	if err := irs.userRepo.CreateUser(user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (irs *InvitationResponseService) notifyInviter(inv *model.MapInvitation, action model.RespondAction) {
	go func() {
		inviter, err := irs.userRepo.GetUserById(inv.InvitedBy)
		if err != nil {
			log.Errorw("failed to look up inviter for notification", "userId", inv.InvitedBy, "err", err)
			return
		}
		if err := irs.notifier.SendResponseNotice(context.Background(), inviter.Email, inv, action); err != nil {
			log.Errorw("failed to send response notification", "inviter", inviter.Email, "err", err)
		}
	}()
}
