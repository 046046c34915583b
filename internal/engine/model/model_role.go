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

package model

// Role is a named permission bundle assigned to a (map, user) pair.
// The enumeration is closed: every permission question has a defined answer
// for every role, and unknown roles are rejected at assignment time.
type Role string

const (
	// RoleViewer may view the map.
	RoleViewer Role = "viewer"
	// RoleEditorAll may view, create, edit and delete any content on the map.
	RoleEditorAll Role = "editor_all"
	// RoleEditorOwn may view and create; edit and delete are restricted to
	// content the same user created.
	RoleEditorOwn Role = "editor_own"
	// RoleContributor may view and add new content but not change existing.
	RoleContributor Role = "contributor"
	// RoleBanned is explicitly denied all access, including public view.
	RoleBanned Role = "banned"
)

// Permission is a single capability on a map.
type Permission string

const (
	PermissionView   Permission = "view"
	PermissionCreate Permission = "create"
	PermissionEdit   Permission = "edit"
	PermissionDelete Permission = "delete"
)

// PermissionSet is the capabilities a role grants. OwnContentOnly scopes
// Edit/Delete to content created by the role holder.
type PermissionSet struct {
	View           bool
	Create         bool
	Edit           bool
	Delete         bool
	OwnContentOnly bool
}

// rolePermissions is the static role catalog; loaded once at process start,
// never mutated at runtime.
var rolePermissions = map[Role]PermissionSet{
	RoleViewer:      {View: true},
	RoleEditorAll:   {View: true, Create: true, Edit: true, Delete: true},
	RoleEditorOwn:   {View: true, Create: true, Edit: true, Delete: true, OwnContentOnly: true},
	RoleContributor: {View: true, Create: true},
	RoleBanned:      {},
}

// IsValidRole reports whether role is in the closed enumeration. This is the
// single choke point that keeps typos and injected values out of the
// permission evaluation.
func IsValidRole(role Role) bool {
	_, ok := rolePermissions[role]
	return ok
}

// PermissionsOf returns the permission set of role. Unknown roles get the
// empty set; they are never silently granted access.
func PermissionsOf(role Role) PermissionSet {
	return rolePermissions[role]
}

// IsFullEditingRole reports whether role carries unrestricted edit rights.
// The last-editor invariant counts holders of these roles.
func IsFullEditingRole(role Role) bool {
	perms, ok := rolePermissions[role]
	return ok && perms.Edit && !perms.OwnContentOnly
}

// AllRoles returns the closed role enumeration.
func AllRoles() []Role {
	return []Role{RoleViewer, RoleEditorAll, RoleEditorOwn, RoleContributor, RoleBanned}
}
