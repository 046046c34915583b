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
	"github.com/google/wire"

	"github.com/go-atlas/atlas/internal/engine/service"
	"github.com/go-atlas/atlas/pkg/ctx"
	"github.com/go-atlas/atlas/pkg/http"
)

func ProvideServices(user *service.UserService, m *service.MapService, poi *service.PoiService,
	authority *service.MapAuthorityService, roleMutation *service.RoleMutationService,
	invitation *service.InvitationService, invitationResponse *service.InvitationResponseService) *Services {
	return &Services{
		User:               user,
		Map:                m,
		Poi:                poi,
		Authority:          authority,
		RoleMutation:       roleMutation,
		Invitation:         invitation,
		InvitationResponse: invitationResponse,
	}
}

func ProvideRouter(httpConf *http.Http, ctx *ctx.Context, services *Services) *Router {
	return NewRouter(httpConf, ctx, services)
}

var ProviderSet = wire.NewSet(ProvideServices, ProvideRouter)
