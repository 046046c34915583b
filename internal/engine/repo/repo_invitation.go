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

package repo

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/go-atlas/atlas/internal/engine/errs"
	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/pkg/database"
)

type IInvitationRepository interface {
	// CreateGuarded inserts the invitation unless the pair (map_id, email)
	// already has a pending unexpired one; the check and the insert share a
	// transaction so concurrent invites cannot both land. A rival pending
	// invitation surfaces as errs.ErrDuplicateInvitation.
	CreateGuarded(inv *model.MapInvitation, now time.Time) error
	// GetByToken looks the invitation up regardless of status; returns
	// gorm.ErrRecordNotFound when the token is unknown.
	GetByToken(token string) (*model.MapInvitation, error)
	ListByMap(mapId string) ([]model.MapInvitation, error)
	// Transition moves the invitation out of pending with a conditional
	// update; the returned count is zero when another actor already
	// finalized it.
	Transition(token string, toStatus int) (int64, error)
	// Cancel is a Transition restricted to the original inviter.
	Cancel(invitationId, inviterId string) (int64, error)
	// ExpireDue marks every overdue pending invitation expired and reports
	// how many were swept.
	ExpireDue(now time.Time) (int64, error)
}

type InvitationRepo struct {
	db database.IDatabase
}

func NewInvitationRepo(db database.IDatabase) IInvitationRepository {
	return &InvitationRepo{db: db}
}

func (ir *InvitationRepo) CreateGuarded(inv *model.MapInvitation, now time.Time) error {
	return ir.db.Database().Transaction(func(tx *gorm.DB) error {
		// The locking read keeps a concurrent invite for the same pair from
		// passing the check before this insert commits.
		var rivals []model.MapInvitation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("map_id = ? AND LOWER(email) = LOWER(?) AND status = ? AND expires_at > ?",
				inv.MapId, inv.Email, model.InvitationStatusPending, now).
			Find(&rivals).Error
		if err != nil {
			return err
		}
		if len(rivals) > 0 {
			return errs.ErrDuplicateInvitation
		}
		return tx.Create(inv).Error
	})
}

func (ir *InvitationRepo) GetByToken(token string) (*model.MapInvitation, error) {
	var inv model.MapInvitation
	err := ir.db.Database().Where("token = ?", token).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (ir *InvitationRepo) ListByMap(mapId string) ([]model.MapInvitation, error) {
	var invs []model.MapInvitation
	err := ir.db.Database().Where("map_id = ?", mapId).
		Order("created_at DESC").Find(&invs).Error
	if err != nil {
		return nil, err
	}
	return invs, nil
}

func (ir *InvitationRepo) Transition(token string, toStatus int) (int64, error) {
	res := ir.db.Database().Model(&model.MapInvitation{}).
		Where("token = ? AND status = ?", token, model.InvitationStatusPending).
		Update("status", toStatus)
	return res.RowsAffected, res.Error
}

func (ir *InvitationRepo) Cancel(invitationId, inviterId string) (int64, error) {
	res := ir.db.Database().Model(&model.MapInvitation{}).
		Where("invitation_id = ? AND invited_by = ? AND status = ?",
			invitationId, inviterId, model.InvitationStatusPending).
		Update("status", model.InvitationStatusCancelled)
	return res.RowsAffected, res.Error
}

func (ir *InvitationRepo) ExpireDue(now time.Time) (int64, error) {
	res := ir.db.Database().Model(&model.MapInvitation{}).
		Where("status = ? AND expires_at <= ?", model.InvitationStatusPending, now).
		Update("status", model.InvitationStatusExpired)
	return res.RowsAffected, res.Error
}
