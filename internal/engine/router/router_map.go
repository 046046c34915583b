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

func (rt *Router) mapRouter(r fiber.Router, auth, optionalAuth fiber.Handler) {
	mapGroup := r.Group("/map")
	{
		mapGroup.Post("/create", auth, rt.createMap)
		mapGroup.Get("/list", auth, rt.listOwnMaps)

		// view is evaluated against public visibility for anonymous callers
		mapGroup.Get("/:mapId", optionalAuth, rt.getMap)

		mapGroup.Put("/:mapId", auth, rt.updateMap)
		mapGroup.Delete("/:mapId", auth, rt.deleteMap)
	}
}

func (rt *Router) createMap(c *fiber.Ctx) error {
	var req model.CreateMapReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create map failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	resp, err := rt.Services.Map.CreateMap(principalFrom(c), &req)
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, resp)
}

func (rt *Router) listOwnMaps(c *fiber.Ctx) error {
	resp, err := rt.Services.Map.ListOwnMaps(principalFrom(c))
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, resp)
}

func (rt *Router) getMap(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	if mapId == "" {
		return http.WithRepErrMsg(c, http.MapIdIsEmpty.Code, http.MapIdIsEmpty.Msg, c.Path())
	}

	resp, err := rt.Services.Map.GetMap(mapId, principalFrom(c))
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, resp)
}

func (rt *Router) updateMap(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	if mapId == "" {
		return http.WithRepErrMsg(c, http.MapIdIsEmpty.Code, http.MapIdIsEmpty.Msg, c.Path())
	}

	var req model.UpdateMapReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update map failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.Services.Map.UpdateMap(mapId, principalFrom(c), &req); err != nil {
		return replyErr(c, err)
	}
	return replyOk(c)
}

func (rt *Router) deleteMap(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	if mapId == "" {
		return http.WithRepErrMsg(c, http.MapIdIsEmpty.Code, http.MapIdIsEmpty.Msg, c.Path())
	}

	if err := rt.Services.Map.DeleteMap(mapId, principalFrom(c)); err != nil {
		return replyErr(c, err)
	}
	return replyOk(c)
}
