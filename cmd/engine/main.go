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

package main

import (
	"context"
	"flag"

	"github.com/go-atlas/atlas/internal/engine/conf"
	"github.com/go-atlas/atlas/internal/engine/notify"
	"github.com/go-atlas/atlas/internal/engine/repo"
	"github.com/go-atlas/atlas/internal/engine/router"
	"github.com/go-atlas/atlas/internal/engine/service"
	"github.com/go-atlas/atlas/pkg/cache"
	"github.com/go-atlas/atlas/pkg/cron"
	"github.com/go-atlas/atlas/pkg/ctx"
	"github.com/go-atlas/atlas/pkg/database"
	"github.com/go-atlas/atlas/pkg/http"
	"github.com/go-atlas/atlas/pkg/log"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf ./conf.d/config.toml")
}

func main() {
	flag.Parse()

	appConf := conf.NewConf(configFile)

	log.MustInit(&appConf.Log)
	defer log.Sync()

	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	gormDB, err := database.NewDatabase(appConf.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	db := database.NewGormDB(gormDB)

	appCtx := ctx.NewContext(context.Background(), gormDB, redisClient, log.GetLogger())

	// repositories
	userRepo := repo.NewUserRepo(db, cache.ProvideICache(redisClient))
	mapRepo := repo.NewMapRepo(db)
	poiRepo := repo.NewPoiRepo(db)
	roleRepo := repo.NewRoleAssignmentRepo(db)
	invRepo := repo.NewInvitationRepo(db)

	// services
	notifier := notify.ProvideNotifier(appConf.Email)
	authority := service.NewMapAuthorityService(mapRepo, roleRepo)
	services := &router.Services{
		User:               service.NewUserService(userRepo),
		Map:                service.NewMapService(mapRepo, authority),
		Poi:                service.NewPoiService(poiRepo, authority),
		Authority:          authority,
		RoleMutation:       service.NewRoleMutationService(mapRepo, roleRepo),
		Invitation:         service.NewInvitationService(mapRepo, invRepo, notifier, appConf.Invite.UrlBase),
		InvitationResponse: service.NewInvitationResponseService(invRepo, userRepo, roleRepo, notifier),
	}

	// periodic invitation expiry sweep
	cron.Init()
	if err := cron.AddFunc("invitation-expiry-sweep", appConf.Invite.SweepSpec, func() {
		if _, err := services.Invitation.ExpireDue(); err != nil {
			log.Errorf("invitation expiry sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("failed to schedule invitation expiry sweep: %v", err)
	}
	cron.Start()
	defer cron.Stop()

	route := router.NewRouter(&appConf.Http, appCtx, services)

	shutdown := http.NewHttp(appConf.Http, route.Router())
	shutdown()
}
