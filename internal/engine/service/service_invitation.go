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
	"time"

	"gorm.io/gorm"

	"github.com/go-atlas/atlas/internal/engine/errs"
	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/internal/engine/notify"
	"github.com/go-atlas/atlas/internal/engine/repo"
	"github.com/go-atlas/atlas/pkg/id"
	"github.com/go-atlas/atlas/pkg/log"
	"github.com/go-atlas/atlas/pkg/statemachine"
)

// InvitationService creates invitations and drives them through their
// lifecycle. All state changes go through status-guarded conditional updates,
// so concurrent actors on the same token cannot double-apply a transition.
type InvitationService struct {
	mapRepo  repo.IMapRepository
	invRepo  repo.IInvitationRepository
	notifier notify.INotifier
	// inviteUrlBase prefixes the token in outbound mail, e.g.
	// "https://atlas.example.com/invitation".
	inviteUrlBase string
	now           func() time.Time
}

func NewInvitationService(mapRepo repo.IMapRepository, invRepo repo.IInvitationRepository,
	notifier notify.INotifier, inviteUrlBase string) *InvitationService {
	return &InvitationService{
		mapRepo:       mapRepo,
		invRepo:       invRepo,
		notifier:      notifier,
		inviteUrlBase: inviteUrlBase,
		now:           time.Now,
	}
}

// Invite creates a pending invitation for (map, email) and dispatches the
// invitation mail as a fire-and-forget side effect. Only the map owner may
// invite; at most one pending unexpired invitation may exist per pair.
func (is *InvitationService) Invite(mapId string, acting *model.Principal, req *model.InviteReq) (*model.InvitationResp, error) {
	m, err := is.mapRepo.GetMap(mapId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if acting == nil || !m.IsOwner(acting) {
		return nil, errs.ErrForbidden
	}
	if !model.IsValidRole(req.Role) || req.Role == model.RoleBanned {
		return nil, errs.ErrInvalidRole
	}
	now := is.now()
	token, err := id.NewInviteToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}
	inv := &model.MapInvitation{
		InvitationId: id.GetUUID(),
		MapId:        mapId,
		Email:        req.Email,
		Role:         req.Role,
		Token:        token,
		InvitedBy:    acting.UserId,
		Status:       model.InvitationStatusPending,
		ExpiresAt:    now.Add(model.InvitationTTL),
	}
	// The repo rejects the insert with errs.ErrDuplicateInvitation when the
	// pair already has a pending unexpired invitation.
	if err := is.invRepo.CreateGuarded(inv, now); err != nil {
		return nil, err
	}

	go func() {
		url := fmt.Sprintf("%s/%s", is.inviteUrlBase, token)
		if err := is.notifier.SendInvitation(context.Background(), inv, m.Name, url); err != nil {
			log.Errorw("failed to send invitation mail", "email", inv.Email, "err", err)
		}
	}()
	return model.ToInvitationResp(inv), nil
}

// FindByToken resolves a token to its pending, unexpired invitation. Expired,
// terminal and unknown tokens all come back as errs.ErrNotFound, so this call
// alone cannot distinguish them.
func (is *InvitationService) FindByToken(token string) (*model.MapInvitation, error) {
	inv, err := is.invRepo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if inv.Terminal() || inv.Expired(is.now()) {
		return nil, errs.ErrNotFound
	}
	return inv, nil
}

// Inspect is the user-facing lookup: it surfaces non-pending and expired
// invitations so the UI can say why an invite is no longer usable. An
// invitation past its deadline but not yet swept is presented as expired.
func (is *InvitationService) Inspect(token string) (*model.InvitationResp, error) {
	inv, err := is.invRepo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	resp := model.ToInvitationResp(inv)
	if inv.Status == model.InvitationStatusPending && inv.Expired(is.now()) {
		resp.Status = model.InvitationStatusExpired
	}
	return resp, nil
}

// Transition applies a status-guarded conditional update from pending to
// toStatus and returns the number of affected rows. Zero means another actor
// already finalized the invitation.
func (is *InvitationService) Transition(token string, toStatus int) (int64, error) {
	sm := statemachine.NewInvitationStateMachine()
	if !sm.CanTransit(statemachine.InvitationPending, statemachine.InvitationState(toStatus)) {
		return 0, errs.ErrInvitationInvalid
	}
	return is.invRepo.Transition(token, toStatus)
}

// Cancel withdraws a pending invitation. The conditional update requires the
// acting principal to be the original inviter; any mismatch is reported as
// errs.ErrNotFound so a non-owning caller cannot probe for existence.
func (is *InvitationService) Cancel(invitationId string, acting *model.Principal) error {
	if acting == nil {
		return errs.ErrNotFound
	}
	rows, err := is.invRepo.Cancel(invitationId, acting.UserId)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListByMap returns the map's invitations to its owner.
func (is *InvitationService) ListByMap(mapId string, acting *model.Principal) ([]model.InvitationResp, error) {
	m, err := is.mapRepo.GetMap(mapId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if acting == nil || !m.IsOwner(acting) {
		return nil, errs.ErrForbidden
	}
	invs, err := is.invRepo.ListByMap(mapId)
	if err != nil {
		return nil, err
	}
	now := is.now()
	resp := make([]model.InvitationResp, 0, len(invs))
	for i := range invs {
		r := model.ToInvitationResp(&invs[i])
		if invs[i].Status == model.InvitationStatusPending && invs[i].Expired(now) {
			r.Status = model.InvitationStatusExpired
		}
		resp = append(resp, *r)
	}
	return resp, nil
}

// ExpireDue sweeps overdue pending invitations into expired. Idempotent;
// scheduled periodically and safe to run at any time.
func (is *InvitationService) ExpireDue() (int64, error) {
	n, err := is.invRepo.ExpireDue(is.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Infof("expired %d overdue invitations", n)
	}
	return n, nil
}
