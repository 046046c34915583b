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
)

// MapAuthorityService answers permission questions for a (map, principal)
// pair. It never mutates state. A missing map is reported as errs.ErrNotFound
// on every operation, so a caller cannot learn whether a private map exists.
type MapAuthorityService struct {
	mapRepo  repo.IMapRepository
	roleRepo repo.IRoleAssignmentRepository
}

func NewMapAuthorityService(mapRepo repo.IMapRepository, roleRepo repo.IRoleAssignmentRepository) *MapAuthorityService {
	return &MapAuthorityService{mapRepo: mapRepo, roleRepo: roleRepo}
}

// grant is the resolved authority of a principal on one map.
type grant struct {
	m       *model.Map
	isOwner bool
	hasRole bool
	role    model.Role
}

func (g *grant) perms() model.PermissionSet {
	if !g.hasRole {
		return model.PermissionSet{}
	}
	return model.PermissionsOf(g.role)
}

func (mas *MapAuthorityService) resolve(mapId string, p *model.Principal) (*grant, error) {
	m, err := mas.mapRepo.GetMap(mapId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	g := &grant{m: m}
	if p == nil {
		return g, nil
	}
	g.isOwner = m.IsOwner(p)
	if g.isOwner {
		return g, nil
	}
	ra, err := mas.roleRepo.Get(mapId, p.UserId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return g, nil
		}
		return nil, err
	}
	g.hasRole = true
	g.role = ra.Role
	return g, nil
}

// CanView applies, in order: the banned override, public visibility, owner
// rights, then any role granting view. Anonymous principals are evaluated
// against the public flag only.
func (mas *MapAuthorityService) CanView(mapId string, p *model.Principal) (bool, error) {
	g, err := mas.resolve(mapId, p)
	if err != nil {
		return false, err
	}
	if g.hasRole && g.role == model.RoleBanned {
		return false, nil
	}
	if g.m.Public() {
		return true, nil
	}
	if g.isOwner {
		return true, nil
	}
	return g.perms().View, nil
}

// CanEdit is true for the owner or any role whose permission set includes
// edit. Map level edits have no creator, so the own-content restriction does
// not narrow this answer.
func (mas *MapAuthorityService) CanEdit(mapId string, p *model.Principal) (bool, error) {
	g, err := mas.resolve(mapId, p)
	if err != nil {
		return false, err
	}
	if g.isOwner {
		return true, nil
	}
	return g.perms().Edit, nil
}

func (mas *MapAuthorityService) CanAddPoi(mapId string, p *model.Principal) (bool, error) {
	g, err := mas.resolve(mapId, p)
	if err != nil {
		return false, err
	}
	if g.isOwner {
		return true, nil
	}
	return g.perms().Create, nil
}

// CanEditPoi applies the own-content rule: a role scoped to own content may
// act only when the principal created the resource.
func (mas *MapAuthorityService) CanEditPoi(mapId string, p *model.Principal, resourceCreatorId string) (bool, error) {
	g, err := mas.resolve(mapId, p)
	if err != nil {
		return false, err
	}
	if g.isOwner {
		return true, nil
	}
	perms := g.perms()
	if !perms.Edit {
		return false, nil
	}
	if perms.OwnContentOnly && resourceCreatorId != p.UserId {
		return false, nil
	}
	return true, nil
}

func (mas *MapAuthorityService) CanDeletePoi(mapId string, p *model.Principal, resourceCreatorId string) (bool, error) {
	g, err := mas.resolve(mapId, p)
	if err != nil {
		return false, err
	}
	if g.isOwner {
		return true, nil
	}
	perms := g.perms()
	if !perms.Delete {
		return false, nil
	}
	if perms.OwnContentOnly && resourceCreatorId != p.UserId {
		return false, nil
	}
	return true, nil
}
