package model

// RoleAssignment binds a role to a (map, user) pair. One row per pair;
// assigning a new role overwrites the old one. The map owner never has a row.
type RoleAssignment struct {
	BaseModel
	MapId  string `gorm:"column:map_id;not null;uniqueIndex:uk_map_user" json:"mapId"`
	UserId string `gorm:"column:user_id;not null;uniqueIndex:uk_map_user" json:"userId"`
	Role   Role   `gorm:"column:role;not null" json:"role"`
}

func (RoleAssignment) TableName() string {
	return "t_role_assignment"
}

type AssignRoleReq struct {
	Role Role `json:"role"`
}

type RoleAssignmentResp struct {
	MapId  string `json:"mapId"`
	UserId string `json:"userId"`
	Role   Role   `json:"role"`
}

func ToRoleAssignmentResp(ra *RoleAssignment) *RoleAssignmentResp {
	return &RoleAssignmentResp{
		MapId:  ra.MapId,
		UserId: ra.UserId,
		Role:   ra.Role,
	}
}
