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
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/internal/engine/repo"
	"github.com/go-atlas/atlas/pkg/http"
	"github.com/go-atlas/atlas/pkg/http/jwt"
	"github.com/go-atlas/atlas/pkg/id"
	"github.com/go-atlas/atlas/pkg/log"
)

type UserService struct {
	userRepo repo.IUserRepository
}

func NewUserService(userRepo repo.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (us *UserService) Register(register *model.Register) error {
	existing, err := us.userRepo.GetUserByEmail(register.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return errors.New(http.UserAlreadyExist.Msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(register.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return err
	}
	user := &model.User{
		UserId:    id.GetUUID(),
		Username:  register.Username,
		Nickname:  register.Nickname,
		Password:  string(hash),
		Email:     register.Email,
		IsEnabled: 1,
	}
	return us.userRepo.CreateUser(user)
}

func (us *UserService) Login(login *model.Login, auth http.Auth) (*model.LoginResp, error) {
	user, err := us.userRepo.GetUserByEmail(login.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(http.UserNotExist.Msg)
		}
		return nil, err
	}
	if user.IsEnabled == 0 {
		return nil, errors.New(http.AuthenticationFailed.Msg)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(login.Password)) != nil {
		return nil, errors.New(http.UserIncorrectPassword.Msg)
	}

	aToken, rToken, err := jwt.GenToken(user.UserId, user.Email, []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		log.Errorf("failed to generate tokens: %v", err)
		return nil, err
	}

	go func() {
		if _, err := us.userRepo.SetToken(user.UserId, aToken, auth); err != nil {
			log.Errorf("failed to store token: %v", err)
		}
	}()

	now := time.Now()
	return &model.LoginResp{
		UserInfo: model.UserInfo{
			UserId:   user.UserId,
			Username: user.Username,
			Nickname: user.Nickname,
			Avatar:   user.Avatar,
			Email:    user.Email,
		},
		Token: map[string]string{
			"accessToken":  aToken,
			"refreshToken": rToken,
		},
		ExpireAt: now.Add(auth.AccessExpire * time.Minute).Unix(),
		CreateAt: now.Unix(),
	}, nil
}

func (us *UserService) Logout(userId string) error {
	return us.userRepo.DelToken(userId)
}

func (us *UserService) Refresh(auth *http.Auth, userId, email, rToken string) (map[string]string, error) {
	tokens, err := jwt.RefreshToken(auth, userId, email, rToken)
	if err != nil {
		return nil, err
	}
	go func() {
		if _, err := us.userRepo.SetToken(userId, tokens["accessToken"], *auth); err != nil {
			log.Errorf("failed to store refreshed token: %v", err)
		}
	}()
	return tokens, nil
}

func (us *UserService) GetUserInfo(userId string) (*model.UserInfo, error) {
	user, err := us.userRepo.GetUserById(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(http.UserNotExist.Msg)
		}
		return nil, err
	}
	return &model.UserInfo{
		UserId:   user.UserId,
		Username: user.Username,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
		Email:    user.Email,
	}, nil
}
