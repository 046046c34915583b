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

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/pkg/http"
	"github.com/go-atlas/atlas/pkg/log"
)

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	userGroup := r.Group("/user")
	{
		userGroup.Post("/register", rt.register)
		userGroup.Post("/login", rt.login)

		userGroup.Post("/logout", auth, rt.logout)
		userGroup.Get("/refresh", auth, rt.refresh)
		userGroup.Get("/getUserInfo", auth, rt.getUserInfo)
	}
}

func (rt *Router) register(c *fiber.Ctx) error {
	var req model.Register
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("register failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}
	if req.Email == "" || req.Password == "" {
		return http.WithRepErrMsg(c, http.UsernameArePasswordIsRequired.Code, http.UsernameArePasswordIsRequired.Msg, c.Path())
	}

	if err := rt.Services.User.Register(&req); err != nil {
		log.Errorf("register failed: %v", err)
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}
	return replyOk(c)
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.Login
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("login failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	resp, err := rt.Services.User.Login(&req, rt.Http.Auth)
	if err != nil {
		log.Errorf("login failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, err.Error(), c.Path())
	}
	return replyDetail(c, resp)
}

func (rt *Router) logout(c *fiber.Ctx) error {
	p := principalFrom(c)
	if p == nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}
	if err := rt.Services.User.Logout(p.UserId); err != nil {
		log.Errorf("logout failed: %v", err)
		return http.WithRepErrMsg(c, http.Failed.Code, http.Failed.Msg, c.Path())
	}
	return replyOk(c)
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	p := principalFrom(c)
	if p == nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}
	rToken := c.Get("X-Refresh-Token")
	if rToken == "" {
		return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
	}

	tokens, err := rt.Services.User.Refresh(&rt.Http.Auth, p.UserId, p.Email, rToken)
	if err != nil {
		log.Errorf("refresh token failed: %v", err)
		return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
	}
	return replyDetail(c, tokens)
}

func (rt *Router) getUserInfo(c *fiber.Ctx) error {
	p := principalFrom(c)
	if p == nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}
	info, err := rt.Services.User.GetUserInfo(p.UserId)
	if err != nil {
		return http.WithRepErrMsg(c, http.UserNotExist.Code, http.UserNotExist.Msg, c.Path())
	}
	return replyDetail(c, info)
}
