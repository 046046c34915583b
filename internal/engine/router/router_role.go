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

func (rt *Router) roleRouter(r fiber.Router, auth fiber.Handler) {
	roleGroup := r.Group("/map/:mapId/roles")
	{
		roleGroup.Get("/", auth, rt.listRoles)
		roleGroup.Put("/:userId", auth, rt.assignRole)
		roleGroup.Delete("/:userId", auth, rt.removeRole)
	}
}

func (rt *Router) listRoles(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	if mapId == "" {
		return http.WithRepErrMsg(c, http.MapIdIsEmpty.Code, http.MapIdIsEmpty.Msg, c.Path())
	}

	resp, err := rt.Services.RoleMutation.ListRoles(mapId, principalFrom(c))
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, resp)
}

func (rt *Router) assignRole(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	userId := c.Params("userId")
	if mapId == "" || userId == "" {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.AssignRoleReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("assign role failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.Services.RoleMutation.AssignRole(mapId, principalFrom(c), userId, req.Role); err != nil {
		return replyErr(c, err)
	}
	return replyOk(c)
}

func (rt *Router) removeRole(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	userId := c.Params("userId")
	if mapId == "" || userId == "" {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.Services.RoleMutation.RemoveRole(mapId, principalFrom(c), userId); err != nil {
		return replyErr(c, err)
	}
	return replyOk(c)
}
