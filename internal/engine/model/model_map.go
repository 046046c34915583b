package model

// Map is a shareable map. The owner is set at creation and immutable; the
// owner's full rights are implicit in OwnerId, never a RoleAssignment row.
type Map struct {
	BaseModel
	MapId       string `gorm:"column:map_id;not null;uniqueIndex" json:"mapId"`
	OwnerId     string `gorm:"column:owner_id;not null;index" json:"ownerId"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	Cover       string `gorm:"column:cover" json:"cover"` // image reference, upload handled elsewhere
	IsPublic    int    `gorm:"column:is_public;default:0" json:"isPublic"` // 0: private, 1: public
}

func (Map) TableName() string {
	return "t_map"
}

// Public reports whether the map is visible without a role.
func (m *Map) Public() bool {
	return m.IsPublic == 1
}

// IsOwner reports whether p is the map owner. Anonymous principals own nothing.
func (m *Map) IsOwner(p *Principal) bool {
	return p != nil && p.UserId == m.OwnerId
}

type CreateMapReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
	IsPublic    int    `json:"isPublic"`
}

type UpdateMapReq struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Cover       *string `json:"cover,omitempty"`
	IsPublic    *int    `json:"isPublic,omitempty"`
}

type MapResp struct {
	MapId       string `json:"mapId"`
	OwnerId     string `json:"ownerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
	IsPublic    int    `json:"isPublic"`
}

func ToMapResp(m *Map) *MapResp {
	return &MapResp{
		MapId:       m.MapId,
		OwnerId:     m.OwnerId,
		Name:        m.Name,
		Description: m.Description,
		Cover:       m.Cover,
		IsPublic:    m.IsPublic,
	}
}
