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

func (rt *Router) invitationRouter(r fiber.Router, auth, optionalAuth fiber.Handler) {
	r.Post("/map/:mapId/invite", auth, rt.invite)
	r.Get("/map/:mapId/invitations", auth, rt.listInvitations)

	invitationGroup := r.Group("/invitation")
	{
		// invitee endpoints work for anonymous callers: the token itself is
		// the credential, and accept may create the account
		invitationGroup.Get("/:token", optionalAuth, rt.inspectInvitation)
		invitationGroup.Post("/:token/respond", optionalAuth, rt.respondInvitation)

		invitationGroup.Delete("/:invitationId", auth, rt.cancelInvitation)
	}
}

func (rt *Router) invite(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	if mapId == "" {
		return http.WithRepErrMsg(c, http.MapIdIsEmpty.Code, http.MapIdIsEmpty.Msg, c.Path())
	}

	var req model.InviteReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("invite failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}
	if req.Email == "" {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	resp, err := rt.Services.Invitation.Invite(mapId, principalFrom(c), &req)
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, resp)
}

func (rt *Router) listInvitations(c *fiber.Ctx) error {
	mapId := c.Params("mapId")
	if mapId == "" {
		return http.WithRepErrMsg(c, http.MapIdIsEmpty.Code, http.MapIdIsEmpty.Msg, c.Path())
	}

	resp, err := rt.Services.Invitation.ListByMap(mapId, principalFrom(c))
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, resp)
}

func (rt *Router) inspectInvitation(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	resp, err := rt.Services.Invitation.Inspect(token)
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, resp)
}

func (rt *Router) respondInvitation(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.RespondReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("respond to invitation failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}
	if req.Action != model.RespondAccept && req.Action != model.RespondReject {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	result, err := rt.Services.InvitationResponse.Respond(token, req.Action, req.Registration, principalFrom(c))
	if err != nil {
		return replyErr(c, err)
	}
	return replyDetail(c, result)
}

func (rt *Router) cancelInvitation(c *fiber.Ctx) error {
	invitationId := c.Params("invitationId")
	if invitationId == "" {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.Services.Invitation.Cancel(invitationId, principalFrom(c)); err != nil {
		return replyErr(c, err)
	}
	return replyOk(c)
}
