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
	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/pkg/database"
)

type IPoiRepository interface {
	CreatePoi(poi *model.Poi) error
	GetPoi(poiId string) (*model.Poi, error)
	ListPoisByMap(mapId string) ([]model.Poi, error)
	UpdatePoi(poiId string, updates map[string]any) error
	DeletePoi(poiId string) error
	CreateCategory(category *model.Category) error
	ListCategoriesByMap(mapId string) ([]model.Category, error)
}

type PoiRepo struct {
	db database.IDatabase
}

func NewPoiRepo(db database.IDatabase) IPoiRepository {
	return &PoiRepo{db: db}
}

func (pr *PoiRepo) CreatePoi(poi *model.Poi) error {
	return pr.db.Database().Create(poi).Error
}

func (pr *PoiRepo) GetPoi(poiId string) (*model.Poi, error) {
	var poi model.Poi
	err := pr.db.Database().Where("poi_id = ?", poiId).First(&poi).Error
	if err != nil {
		return nil, err
	}
	return &poi, nil
}

func (pr *PoiRepo) ListPoisByMap(mapId string) ([]model.Poi, error) {
	var pois []model.Poi
	err := pr.db.Database().Where("map_id = ?", mapId).
		Order("created_at ASC").Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}

func (pr *PoiRepo) UpdatePoi(poiId string, updates map[string]any) error {
	return pr.db.Database().Model(&model.Poi{}).
		Where("poi_id = ?", poiId).Updates(updates).Error
}

func (pr *PoiRepo) DeletePoi(poiId string) error {
	return pr.db.Database().Where("poi_id = ?", poiId).Delete(&model.Poi{}).Error
}

func (pr *PoiRepo) CreateCategory(category *model.Category) error {
	return pr.db.Database().Create(category).Error
}

func (pr *PoiRepo) ListCategoriesByMap(mapId string) ([]model.Category, error) {
	var categories []model.Category
	err := pr.db.Database().Where("map_id = ?", mapId).
		Order("created_at ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
