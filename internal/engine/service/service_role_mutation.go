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

	"gorm.io/gorm"

	"github.com/go-atlas/atlas/internal/engine/errs"
	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/internal/engine/repo"
	"github.com/go-atlas/atlas/pkg/log"
)

// RoleMutationService validates and persists role assignment changes.
// Checks run in a fixed order and the first failure wins: self-action rules,
// owner-only authority, owner immutability, then inside the storage
// transaction the last-editor invariant and role validity.
type RoleMutationService struct {
	mapRepo  repo.IMapRepository
	roleRepo repo.IRoleAssignmentRepository
}

func NewRoleMutationService(mapRepo repo.IMapRepository, roleRepo repo.IRoleAssignmentRepository) *RoleMutationService {
	return &RoleMutationService{mapRepo: mapRepo, roleRepo: roleRepo}
}

func (rms *RoleMutationService) getMap(mapId string) (*model.Map, error) {
	m, err := rms.mapRepo.GetMap(mapId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// validate runs the pre-transaction checks shared by assign and remove.
// newRole is empty for a removal.
func (rms *RoleMutationService) validate(m *model.Map, acting *model.Principal, targetUserId string, newRole model.Role) error {
	if acting != nil && acting.UserId == targetUserId {
		// A caller acting on itself cannot ban itself or walk away from
		// its own assignment; the owner locking itself out of the map's
		// delegation surface is the case this closes.
		if newRole == "" || newRole == model.RoleBanned {
			return errs.ErrSelfActionForbidden
		}
	}
	if acting == nil || !m.IsOwner(acting) {
		return errs.ErrForbidden
	}
	if targetUserId == m.OwnerId {
		return errs.ErrInvalidTarget
	}
	return nil
}

// AssignRole grants or overwrites the target's role on the map. The
// last-editor and role-validity checks run inside the repository transaction
// together with the write.
func (rms *RoleMutationService) AssignRole(mapId string, acting *model.Principal, targetUserId string, newRole model.Role) error {
	m, err := rms.getMap(mapId)
	if err != nil {
		return err
	}
	if err := rms.validate(m, acting, targetUserId, newRole); err != nil {
		return err
	}
	if err := rms.roleRepo.UpsertGuarded(mapId, targetUserId, newRole); err != nil {
		if !errs.IsDomainErr(err) {
			log.Errorw("failed to assign role", "mapId", mapId, "target", targetUserId, "err", err)
		}
		return err
	}
	return nil
}

// RemoveRole deletes the target's assignment under the same guard.
func (rms *RoleMutationService) RemoveRole(mapId string, acting *model.Principal, targetUserId string) error {
	m, err := rms.getMap(mapId)
	if err != nil {
		return err
	}
	if err := rms.validate(m, acting, targetUserId, ""); err != nil {
		return err
	}
	if err := rms.roleRepo.RemoveGuarded(mapId, targetUserId); err != nil {
		if !errs.IsDomainErr(err) {
			log.Errorw("failed to remove role", "mapId", mapId, "target", targetUserId, "err", err)
		}
		return err
	}
	return nil
}

// ListRoles returns the map's assignments; only the owner may read them.
func (rms *RoleMutationService) ListRoles(mapId string, acting *model.Principal) ([]model.RoleAssignmentResp, error) {
	m, err := rms.getMap(mapId)
	if err != nil {
		return nil, err
	}
	if acting == nil || !m.IsOwner(acting) {
		return nil, errs.ErrForbidden
	}
	ras, err := rms.roleRepo.ListByMap(mapId)
	if err != nil {
		return nil, err
	}
	resp := make([]model.RoleAssignmentResp, 0, len(ras))
	for i := range ras {
		resp = append(resp, *model.ToRoleAssignmentResp(&ras[i]))
	}
	return resp, nil
}
