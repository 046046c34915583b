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
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/go-atlas/atlas/internal/engine/consts"
	"github.com/go-atlas/atlas/internal/engine/errs"
	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/internal/engine/service"
	"github.com/go-atlas/atlas/pkg/ctx"
	httpx "github.com/go-atlas/atlas/pkg/http"
	"github.com/go-atlas/atlas/pkg/http/jwt"
	"github.com/go-atlas/atlas/pkg/http/middleware"
)

// Services bundles the service layer for handler access.
type Services struct {
	User               *service.UserService
	Map                *service.MapService
	Poi                *service.PoiService
	Authority          *service.MapAuthorityService
	RoleMutation       *service.RoleMutationService
	Invitation         *service.InvitationService
	InvitationResponse *service.InvitationResponseService
}

type Router struct {
	Http     *httpx.Http
	Ctx      *ctx.Context
	Services *Services
}

func NewRouter(httpConf *httpx.Http, ctx *ctx.Context, services *Services) *Router {
	return &Router{
		Http:     httpConf,
		Ctx:      ctx,
		Services: services,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
	})

	app.Use(middleware.CorsMiddleware())
	app.Use(middleware.ExceptionMiddleware)
	app.Use(middleware.UnifiedResponseMiddleware())
	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(rt.Http))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group(rt.Http.ContextPath)
	rt.routerGroup(api)

	return app
}

func (rt *Router) routerGroup(r fiber.Router) {
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Http.Auth.RedisKeyPrefix, rt.Ctx.GetRedis())
	optionalAuth := middleware.OptionalAuthorizationMiddleware(rt.Http.Auth.SecretKey)

	rt.userRouter(r, auth)
	rt.mapRouter(r, auth, optionalAuth)
	rt.poiRouter(r, auth, optionalAuth)
	rt.roleRouter(r, auth)
	rt.invitationRouter(r, auth, optionalAuth)
}

// principalFrom builds the acting principal from the parsed claims; nil for
// anonymous callers.
func principalFrom(c *fiber.Ctx) *model.Principal {
	claims, ok := c.Locals(middleware.ClaimsKey).(*jwt.AuthClaims)
	if !ok || claims == nil {
		return nil
	}
	return &model.Principal{UserId: claims.UserId, Email: claims.Email}
}

// errCodes maps the domain error taxonomy onto response codes 1:1.
var errCodes = []struct {
	err  error
	code *httpx.Response
}{
	{errs.ErrNotFound, httpx.NotFound},
	{errs.ErrForbidden, httpx.PermissionDenied},
	{errs.ErrInvalidRole, httpx.InvalidRole},
	{errs.ErrInvalidTarget, httpx.InvalidTarget},
	{errs.ErrSelfActionForbidden, httpx.SelfActionForbidden},
	{errs.ErrLastEditorProtected, httpx.LastEditorProtected},
	{errs.ErrDuplicateInvitation, httpx.DuplicateInvitation},
	{errs.ErrInvitationInvalid, httpx.InvitationInvalid},
	{errs.ErrAlreadyProcessed, httpx.AlreadyProcessed},
	{errs.ErrRegistrationRequired, httpx.RegistrationRequired},
	{errs.ErrWrongUser, httpx.WrongUser},
}

func replyErr(c *fiber.Ctx, err error) error {
	for _, m := range errCodes {
		if errors.Is(err, m.err) {
			return httpx.WithRepErrMsg(c, m.code.Code, m.code.Msg, c.Path())
		}
	}
	return httpx.WithRepErrMsg(c, httpx.Failed.Code, httpx.Failed.Msg, c.Path())
}

func replyDetail(c *fiber.Ctx, detail any) error {
	c.Locals(consts.DETAIL, detail)
	return nil
}

func replyOk(c *fiber.Ctx) error {
	c.Locals(consts.OPERATION, "")
	return nil
}
