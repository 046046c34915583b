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
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-atlas/atlas/internal/engine/consts"
	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/pkg/cache"
	"github.com/go-atlas/atlas/pkg/database"
	"github.com/go-atlas/atlas/pkg/http"
)

type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserById(userId string) (*model.User, error)
	// GetUserByEmail matches case-insensitively; returns gorm.ErrRecordNotFound
	// when no account exists.
	GetUserByEmail(email string) (*model.User, error)
	SetToken(userId, aToken string, auth http.Auth) (string, error)
	DelToken(userId string) error
}

type UserRepo struct {
	db    database.IDatabase
	cache cache.ICache
}

func NewUserRepo(db database.IDatabase, cache cache.ICache) IUserRepository {
	return &UserRepo{db: db, cache: cache}
}

func (ur *UserRepo) CreateUser(user *model.User) error {
	return ur.db.Database().Create(user).Error
}

func (ur *UserRepo) GetUserById(userId string) (*model.User, error) {
	var user model.User
	err := ur.db.Database().Where("user_id = ?", userId).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *UserRepo) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := ur.db.Database().Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetToken stores the access token in redis keyed by user id; the TTL tracks
// the token's own expiry so logout and expiry converge.
func (ur *UserRepo) SetToken(userId, aToken string, auth http.Auth) (string, error) {
	if ur.cache == nil {
		return "", fmt.Errorf("cache not available")
	}
	ctx := context.Background()

	now := time.Now()
	tokenInfo := model.TokenInfo{
		AccessToken: aToken,
		ExpireAt:    now.Add(auth.AccessExpire * time.Minute).Unix(),
		CreateAt:    now.Unix(),
	}
	payload, err := json.Marshal(tokenInfo)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token info: %w", err)
	}

	key := consts.UserTokenKey + userId
	if err := ur.cache.Set(ctx, key, payload, auth.AccessExpire*time.Minute).Err(); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return key, nil
}

func (ur *UserRepo) DelToken(userId string) error {
	if ur.cache == nil {
		return fmt.Errorf("cache not available")
	}
	return ur.cache.Del(context.Background(), consts.UserTokenKey+userId).Err()
}
