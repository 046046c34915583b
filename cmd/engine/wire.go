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

//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	"github.com/go-atlas/atlas/internal/engine/conf"
	"github.com/go-atlas/atlas/internal/engine/notify"
	"github.com/go-atlas/atlas/internal/engine/repo"
	"github.com/go-atlas/atlas/internal/engine/router"
	"github.com/go-atlas/atlas/internal/engine/service"
	"github.com/go-atlas/atlas/pkg/cache"
	"github.com/go-atlas/atlas/pkg/ctx"
	"github.com/go-atlas/atlas/pkg/database"
	"github.com/go-atlas/atlas/pkg/http"
)

func initRouter(appConf conf.AppConfig, appCtx *ctx.Context, db database.IDatabase, redisClient *redis.Client) *router.Router {
	panic(wire.Build(
		confProviderSet,
		cache.ProvideICache,
		notify.ProviderSet,
		repo.ProviderSet,
		service.ProviderSet,
		router.ProviderSet,
	))
}

var confProviderSet = wire.NewSet(
	provideHttpConfig,
	provideEmailConfig,
	provideInviteUrlBase,
)

func provideHttpConfig(appConf conf.AppConfig) *http.Http {
	return &appConf.Http
}

func provideEmailConfig(appConf conf.AppConfig) notify.Email {
	return appConf.Email
}

// provideInviteUrlBase feeds NewInvitationService its outbound url prefix.
func provideInviteUrlBase(appConf conf.AppConfig) string {
	return appConf.Invite.UrlBase
}
