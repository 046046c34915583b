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
	"gorm.io/gorm"

	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/pkg/database"
)

type IMapRepository interface {
	CreateMap(m *model.Map) error
	// GetMap returns gorm.ErrRecordNotFound when no such map exists.
	GetMap(mapId string) (*model.Map, error)
	ListMapsByOwner(ownerId string) ([]model.Map, error)
	UpdateMap(mapId string, updates map[string]any) error
	// DeleteMap removes the map together with its role assignments,
	// invitations, points and categories in one transaction.
	DeleteMap(mapId string) error
}

type MapRepo struct {
	db database.IDatabase
}

func NewMapRepo(db database.IDatabase) IMapRepository {
	return &MapRepo{db: db}
}

func (mr *MapRepo) CreateMap(m *model.Map) error {
	return mr.db.Database().Create(m).Error
}

func (mr *MapRepo) GetMap(mapId string) (*model.Map, error) {
	var m model.Map
	err := mr.db.Database().Where("map_id = ?", mapId).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (mr *MapRepo) ListMapsByOwner(ownerId string) ([]model.Map, error) {
	var maps []model.Map
	err := mr.db.Database().Where("owner_id = ?", ownerId).
		Order("created_at DESC").Find(&maps).Error
	if err != nil {
		return nil, err
	}
	return maps, nil
}

func (mr *MapRepo) UpdateMap(mapId string, updates map[string]any) error {
	return mr.db.Database().Model(&model.Map{}).
		Where("map_id = ?", mapId).Updates(updates).Error
}

func (mr *MapRepo) DeleteMap(mapId string) error {
	return mr.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("map_id = ?", mapId).Delete(&model.RoleAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("map_id = ?", mapId).Delete(&model.MapInvitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("map_id = ?", mapId).Delete(&model.Poi{}).Error; err != nil {
			return err
		}
		if err := tx.Where("map_id = ?", mapId).Delete(&model.Category{}).Error; err != nil {
			return err
		}
		return tx.Where("map_id = ?", mapId).Delete(&model.Map{}).Error
	})
}
