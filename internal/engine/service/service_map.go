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
	"github.com/go-atlas/atlas/pkg/id"
)

// MapService handles map CRUD. Permission questions are delegated to
// MapAuthorityService; structural changes (update, delete) stay owner-only.
type MapService struct {
	mapRepo   repo.IMapRepository
	authority *MapAuthorityService
}

func NewMapService(mapRepo repo.IMapRepository, authority *MapAuthorityService) *MapService {
	return &MapService{mapRepo: mapRepo, authority: authority}
}

func (ms *MapService) CreateMap(acting *model.Principal, req *model.CreateMapReq) (*model.MapResp, error) {
	if acting == nil {
		return nil, errs.ErrForbidden
	}
	m := &model.Map{
		MapId:       id.GetUUID(),
		OwnerId:     acting.UserId,
		Name:        req.Name,
		Description: req.Description,
		Cover:       req.Cover,
		IsPublic:    req.IsPublic,
	}
	if err := ms.mapRepo.CreateMap(m); err != nil {
		return nil, err
	}
	return model.ToMapResp(m), nil
}

func (ms *MapService) GetMap(mapId string, acting *model.Principal) (*model.MapResp, error) {
	ok, err := ms.authority.CanView(mapId, acting)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A private map must look absent to an unauthorized caller.
		return nil, errs.ErrNotFound
	}
	m, err := ms.mapRepo.GetMap(mapId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return model.ToMapResp(m), nil
}

func (ms *MapService) ListOwnMaps(acting *model.Principal) ([]model.MapResp, error) {
	if acting == nil {
		return nil, errs.ErrForbidden
	}
	maps, err := ms.mapRepo.ListMapsByOwner(acting.UserId)
	if err != nil {
		return nil, err
	}
	resp := make([]model.MapResp, 0, len(maps))
	for i := range maps {
		resp = append(resp, *model.ToMapResp(&maps[i]))
	}
	return resp, nil
}

func (ms *MapService) UpdateMap(mapId string, acting *model.Principal, req *model.UpdateMapReq) error {
	m, err := ms.ownedMap(mapId, acting)
	if err != nil {
		return err
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Cover != nil {
		updates["cover"] = *req.Cover
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if len(updates) == 0 {
		return nil
	}
	return ms.mapRepo.UpdateMap(m.MapId, updates)
}

func (ms *MapService) DeleteMap(mapId string, acting *model.Principal) error {
	m, err := ms.ownedMap(mapId, acting)
	if err != nil {
		return err
	}
	return ms.mapRepo.DeleteMap(m.MapId)
}

func (ms *MapService) ownedMap(mapId string, acting *model.Principal) (*model.Map, error) {
	m, err := ms.mapRepo.GetMap(mapId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if acting == nil || !m.IsOwner(acting) {
		return nil, errs.ErrForbidden
	}
	return m, nil
}
