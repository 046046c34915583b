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
	"context"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/go-atlas/atlas/internal/engine/errs"
	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/pkg/http"
)

// In-memory repository fakes. They mirror the storage contracts exactly,
// including the gorm.ErrRecordNotFound convention and the guarded mutation
// semantics, so service behavior can be exercised without a database.

type fakeMapRepo struct {
	mu   sync.Mutex
	maps map[string]*model.Map
}

func newFakeMapRepo(maps ...*model.Map) *fakeMapRepo {
	r := &fakeMapRepo{maps: map[string]*model.Map{}}
	for _, m := range maps {
		r.maps[m.MapId] = m
	}
	return r
}

func (r *fakeMapRepo) CreateMap(m *model.Map) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maps[m.MapId] = m
	return nil
}

func (r *fakeMapRepo) GetMap(mapId string) (*model.Map, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.maps[mapId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMapRepo) ListMapsByOwner(ownerId string) ([]model.Map, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Map
	for _, m := range r.maps {
		if m.OwnerId == ownerId {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMapRepo) UpdateMap(mapId string, updates map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.maps[mapId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		m.Name = v.(string)
	}
	if v, ok := updates["is_public"]; ok {
		m.IsPublic = v.(int)
	}
	return nil
}

func (r *fakeMapRepo) DeleteMap(mapId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.maps, mapId)
	return nil
}

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles map[string]map[string]model.Role // mapId -> userId -> role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]map[string]model.Role{}}
}

func (r *fakeRoleRepo) set(mapId, userId string, role model.Role) {
	if r.roles[mapId] == nil {
		r.roles[mapId] = map[string]model.Role{}
	}
	r.roles[mapId][userId] = role
}

func (r *fakeRoleRepo) Get(mapId, userId string) (*model.RoleAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[mapId][userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.RoleAssignment{MapId: mapId, UserId: userId, Role: role}, nil
}

func (r *fakeRoleRepo) ListByMap(mapId string) ([]model.RoleAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.RoleAssignment
	for userId, role := range r.roles[mapId] {
		out = append(out, model.RoleAssignment{MapId: mapId, UserId: userId, Role: role})
	}
	return out, nil
}

func (r *fakeRoleRepo) CountOtherFullEditors(mapId, excludeUserId string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countOtherFullEditorsLocked(mapId, excludeUserId), nil
}

func (r *fakeRoleRepo) countOtherFullEditorsLocked(mapId, excludeUserId string) int64 {
	var n int64
	for userId, role := range r.roles[mapId] {
		if userId != excludeUserId && model.IsFullEditingRole(role) {
			n++
		}
	}
	return n
}

func (r *fakeRoleRepo) Upsert(mapId, userId string, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(mapId, userId, role)
	return nil
}

func (r *fakeRoleRepo) UpsertGuarded(mapId, userId string, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureNotLastEditorLocked(mapId, userId, role); err != nil {
		return err
	}
	if !model.IsValidRole(role) {
		return errs.ErrInvalidRole
	}
	r.set(mapId, userId, role)
	return nil
}

func (r *fakeRoleRepo) RemoveGuarded(mapId, userId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureNotLastEditorLocked(mapId, userId, ""); err != nil {
		return err
	}
	delete(r.roles[mapId], userId)
	return nil
}

func (r *fakeRoleRepo) ensureNotLastEditorLocked(mapId, userId string, newRole model.Role) error {
	current, ok := r.roles[mapId][userId]
	if !ok {
		return nil
	}
	if !model.IsFullEditingRole(current) || model.IsFullEditingRole(newRole) {
		return nil
	}
	if r.countOtherFullEditorsLocked(mapId, userId) == 0 {
		return errs.ErrLastEditorProtected
	}
	return nil
}

type fakeInvRepo struct {
	mu   sync.Mutex
	invs map[string]*model.MapInvitation // token -> invitation
}

func newFakeInvRepo() *fakeInvRepo {
	return &fakeInvRepo{invs: map[string]*model.MapInvitation{}}
}

func (r *fakeInvRepo) CreateGuarded(inv *model.MapInvitation, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rival := range r.invs {
		if rival.MapId == inv.MapId && strings.EqualFold(rival.Email, inv.Email) &&
			rival.Status == model.InvitationStatusPending && rival.ExpiresAt.After(now) {
			return errs.ErrDuplicateInvitation
		}
	}
	cp := *inv
	r.invs[inv.Token] = &cp
	return nil
}

func (r *fakeInvRepo) GetByToken(token string) (*model.MapInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invs[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvRepo) ListByMap(mapId string) ([]model.MapInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MapInvitation
	for _, inv := range r.invs {
		if inv.MapId == mapId {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvRepo) Transition(token string, toStatus int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invs[token]
	if !ok || inv.Status != model.InvitationStatusPending {
		return 0, nil
	}
	inv.Status = toStatus
	return 1, nil
}

func (r *fakeInvRepo) Cancel(invitationId, inviterId string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invs {
		if inv.InvitationId == invitationId && inv.InvitedBy == inviterId &&
			inv.Status == model.InvitationStatusPending {
			inv.Status = model.InvitationStatusCancelled
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeInvRepo) ExpireDue(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, inv := range r.invs {
		if inv.Status == model.InvitationStatusPending && !inv.ExpiresAt.After(now) {
			inv.Status = model.InvitationStatusExpired
			n++
		}
	}
	return n, nil
}

// force rewrites an invitation's deadline in place, for expiry scenarios.
func (r *fakeInvRepo) force(token string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invs[token]; ok {
		inv.ExpiresAt = expiresAt
	}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // userId -> user
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*model.User{}}
	for _, u := range users {
		r.users[u.UserId] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.UserId] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserById(userId string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) SetToken(userId, aToken string, auth http.Auth) (string, error) {
	return userId, nil
}

func (r *fakeUserRepo) DelToken(userId string) error {
	return nil
}

type fakeNotifier struct {
	mu          sync.Mutex
	invitations int
	responses   int
}

func (n *fakeNotifier) SendInvitation(_ context.Context, _ *model.MapInvitation, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.invitations++
	return nil
}

func (n *fakeNotifier) SendResponseNotice(_ context.Context, _ string, _ *model.MapInvitation, _ model.RespondAction) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.responses++
	return nil
}
