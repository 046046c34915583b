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

func (rt *Router) poiRouter(r fiber.Router, auth, optionalAuth fiber.Handler) {
	poiGroup := r.Group("/map/:mapId")
	{
		poiGroup.Post("/poi", auth, rt.createPoi)
		poiGroup.Get("/poi/list", optionalAuth, rt.listPois)
		poiGroup.Put("/poi/:poiId", auth, rt.updatePoi)
		poiGroup.Delete("/poi/:poiId", auth, rt.deletePoi)

		poiGroup.Post("/category", auth, rt.createCategory)
		poiGroup.Get("/category/list", optionalAuth, rt.listCategories)
	}
}

func (rt *Router) createPoi(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	if mapId == "" {
		return http.WithRepErrMsg(c, http.MapIdIsEmpty.Code, http.MapIdIsEmpty.Msg, c.Path())
	}

	var req model.CreatePoiReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create poi failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	poi, err := rt.Services.Poi.CreatePoi(mapId, principalFrom(c), &req)
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, poi)
}

func (rt *Router) listPois(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	if mapId == "" {
		return http.WithRepErrMsg(c, http.MapIdIsEmpty.Code, http.MapIdIsEmpty.Msg, c.Path())
	}

	pois, err := rt.Services.Poi.ListPois(mapId, principalFrom(c))
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, pois)
}

func (rt *Router) updatePoi(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	poiId := c.Params("poiId")
	if mapId == "" || poiId == "" {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.UpdatePoiReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update poi failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.Services.Poi.UpdatePoi(mapId, poiId, principalFrom(c), &req); err != nil {
		return replyErr(c, err)
	}
	return replyOk(c)
}

func (rt *Router) deletePoi(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	poiId := c.Params("poiId")
	if mapId == "" || poiId == "" {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.Services.Poi.DeletePoi(mapId, poiId, principalFrom(c)); err != nil {
		return replyErr(c, err)
	}
	return replyOk(c)
}

func (rt *Router) createCategory(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	if mapId == "" {
		return http.WithRepErrMsg(c, http.MapIdIsEmpty.Code, http.MapIdIsEmpty.Msg, c.Path())
	}

	var req struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create category failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	category, err := rt.Services.Poi.CreateCategory(mapId, principalFrom(c), req.Name, req.Icon)
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, category)
}

func (rt *Router) listCategories(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	if mapId == "" {
		return http.WithRepErrMsg(c, http.MapIdIsEmpty.Code, http.MapIdIsEmpty.Msg, c.Path())
	}

	categories, err := rt.Services.Poi.ListCategories(mapId, principalFrom(c))
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, categories)
}
