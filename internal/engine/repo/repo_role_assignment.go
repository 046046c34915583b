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
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/go-atlas/atlas/internal/engine/errs"
	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/pkg/database"
)

type IRoleAssignmentRepository interface {
	// Get returns gorm.ErrRecordNotFound when the user holds no role on the map.
	Get(mapId, userId string) (*model.RoleAssignment, error)
	ListByMap(mapId string) ([]model.RoleAssignment, error)
	CountOtherFullEditors(mapId, excludeUserId string) (int64, error)
	// Upsert writes the role without the last-editor check. Reserved for
	// paths that grant roles rather than revoke them, such as accepting
	// an invitation.
	Upsert(mapId, userId string, role model.Role) error
	// UpsertGuarded changes the user's role inside a single transaction
	// that rejects demoting the map's last remaining full editor with
	// errs.ErrLastEditorProtected, and an unknown role with
	// errs.ErrInvalidRole.
	UpsertGuarded(mapId, userId string, role model.Role) error
	// RemoveGuarded deletes the assignment under the same last-editor
	// transaction as UpsertGuarded. Removing an absent assignment is a no-op.
	RemoveGuarded(mapId, userId string) error
}

type RoleAssignmentRepo struct {
	db database.IDatabase
}

func NewRoleAssignmentRepo(db database.IDatabase) IRoleAssignmentRepository {
	return &RoleAssignmentRepo{db: db}
}

func (rr *RoleAssignmentRepo) Get(mapId, userId string) (*model.RoleAssignment, error) {
	var ra model.RoleAssignment
	err := rr.db.Database().Where("map_id = ? AND user_id = ?", mapId, userId).First(&ra).Error
	if err != nil {
		return nil, err
	}
	return &ra, nil
}

func (rr *RoleAssignmentRepo) ListByMap(mapId string) ([]model.RoleAssignment, error) {
	var ras []model.RoleAssignment
	err := rr.db.Database().Where("map_id = ?", mapId).
		Order("created_at ASC").Find(&ras).Error
	if err != nil {
		return nil, err
	}
	return ras, nil
}

func (rr *RoleAssignmentRepo) CountOtherFullEditors(mapId, excludeUserId string) (int64, error) {
	return countOtherFullEditors(rr.db.Database(), mapId, excludeUserId)
}

func (rr *RoleAssignmentRepo) Upsert(mapId, userId string, role model.Role) error {
	ra := model.RoleAssignment{MapId: mapId, UserId: userId, Role: role}
	return rr.db.Database().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "map_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role"}),
	}).Create(&ra).Error
}

func (rr *RoleAssignmentRepo) UpsertGuarded(mapId, userId string, role model.Role) error {
	return rr.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := ensureNotLastEditor(tx, mapId, userId, role); err != nil {
			return err
		}
		if !model.IsValidRole(role) {
			return errs.ErrInvalidRole
		}
		ra := model.RoleAssignment{MapId: mapId, UserId: userId, Role: role}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "map_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).Create(&ra).Error
	})
}

func (rr *RoleAssignmentRepo) RemoveGuarded(mapId, userId string) error {
	return rr.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := ensureNotLastEditor(tx, mapId, userId, ""); err != nil {
			return err
		}
		return tx.Where("map_id = ? AND user_id = ?", mapId, userId).
			Delete(&model.RoleAssignment{}).Error
	})
}

// ensureNotLastEditor locks the target's current assignment and fails when the
// change would strip the map's only full editing role. The lock keeps two
// concurrent demotions from both passing the count.
func ensureNotLastEditor(tx *gorm.DB, mapId, userId string, newRole model.Role) error {
	var current model.RoleAssignment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("map_id = ? AND user_id = ?", mapId, userId).First(&current).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !model.IsFullEditingRole(current.Role) || model.IsFullEditingRole(newRole) {
		return nil
	}
	others, err := countOtherFullEditorsLocked(tx, mapId, userId)
	if err != nil {
		return err
	}
	if others == 0 {
		return errs.ErrLastEditorProtected
	}
	return nil
}

func countOtherFullEditors(db *gorm.DB, mapId, excludeUserId string) (int64, error) {
	var n int64
	err := db.Model(&model.RoleAssignment{}).
		Where("map_id = ? AND user_id <> ? AND role = ?", mapId, excludeUserId, model.RoleEditorAll).
		Count(&n).Error
	return n, err
}

func countOtherFullEditorsLocked(tx *gorm.DB, mapId, excludeUserId string) (int64, error) {
	var rows []model.RoleAssignment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("map_id = ? AND user_id <> ? AND role = ?", mapId, excludeUserId, model.RoleEditorAll).
		Find(&rows).Error
	return int64(len(rows)), err
}
