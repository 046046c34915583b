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

// PoiService handles POI and category CRUD, with every mutation gated by
// MapAuthorityService so the own-content rule is enforced uniformly.
type PoiService struct {
	poiRepo   repo.IPoiRepository
	authority *MapAuthorityService
}

func NewPoiService(poiRepo repo.IPoiRepository, authority *MapAuthorityService) *PoiService {
	return &PoiService{poiRepo: poiRepo, authority: authority}
}

func (ps *PoiService) CreatePoi(mapId string, acting *model.Principal, req *model.CreatePoiReq) (*model.Poi, error) {
	if acting == nil {
		return nil, errs.ErrForbidden
	}
	ok, err := ps.authority.CanAddPoi(mapId, acting)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrForbidden
	}
	poi := &model.Poi{
		PoiId:       id.GetUUID(),
		MapId:       mapId,
		CreatorId:   acting.UserId,
		CategoryId:  req.CategoryId,
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := ps.poiRepo.CreatePoi(poi); err != nil {
		return nil, err
	}
	return poi, nil
}

func (ps *PoiService) ListPois(mapId string, acting *model.Principal) ([]model.Poi, error) {
	ok, err := ps.authority.CanView(mapId, acting)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrNotFound
	}
	return ps.poiRepo.ListPoisByMap(mapId)
}

func (ps *PoiService) UpdatePoi(mapId, poiId string, acting *model.Principal, req *model.UpdatePoiReq) error {
	poi, err := ps.getPoiOnMap(mapId, poiId)
	if err != nil {
		return err
	}
	ok, err := ps.authority.CanEditPoi(mapId, acting, poi.CreatorId)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrForbidden
	}
	updates := map[string]any{}
	if req.CategoryId != nil {
		updates["category_id"] = *req.CategoryId
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if len(updates) == 0 {
		return nil
	}
	return ps.poiRepo.UpdatePoi(poiId, updates)
}

func (ps *PoiService) DeletePoi(mapId, poiId string, acting *model.Principal) error {
	poi, err := ps.getPoiOnMap(mapId, poiId)
	if err != nil {
		return err
	}
	ok, err := ps.authority.CanDeletePoi(mapId, acting, poi.CreatorId)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrForbidden
	}
	return ps.poiRepo.DeletePoi(poiId)
}

func (ps *PoiService) CreateCategory(mapId string, acting *model.Principal, name, icon string) (*model.Category, error) {
	if acting == nil {
		return nil, errs.ErrForbidden
	}
	ok, err := ps.authority.CanAddPoi(mapId, acting)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrForbidden
	}
	category := &model.Category{
		CategoryId: id.GetUUID(),
		MapId:      mapId,
		CreatorId:  acting.UserId,
		Name:       name,
		Icon:       icon,
	}
	if err := ps.poiRepo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (ps *PoiService) ListCategories(mapId string, acting *model.Principal) ([]model.Category, error) {
	ok, err := ps.authority.CanView(mapId, acting)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrNotFound
	}
	return ps.poiRepo.ListCategoriesByMap(mapId)
}

func (ps *PoiService) getPoiOnMap(mapId, poiId string) (*model.Poi, error) {
	poi, err := ps.poiRepo.GetPoi(poiId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if poi.MapId != mapId {
		return nil, errs.ErrNotFound
	}
	return poi, nil
}
