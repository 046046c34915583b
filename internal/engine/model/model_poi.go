package model

// Poi is a point of interest on a map. CreatorId feeds the editor_own rule.
type Poi struct {
	BaseModel
	PoiId       string  `gorm:"column:poi_id;not null;uniqueIndex" json:"poiId"`
	MapId       string  `gorm:"column:map_id;not null;index" json:"mapId"`
	CreatorId   string  `gorm:"column:creator_id;not null" json:"creatorId"`
	CategoryId  string  `gorm:"column:category_id" json:"categoryId"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Description string  `gorm:"column:description" json:"description"`
	Latitude    float64 `gorm:"column:latitude" json:"latitude"`
	Longitude   float64 `gorm:"column:longitude" json:"longitude"`
}

func (Poi) TableName() string {
	return "t_poi"
}

// Category groups POIs on a map; carries CreatorId for the editor_own rule.
type Category struct {
	BaseModel
	CategoryId string `gorm:"column:category_id;not null;uniqueIndex" json:"categoryId"`
	MapId      string `gorm:"column:map_id;not null;index" json:"mapId"`
	CreatorId  string `gorm:"column:creator_id;not null" json:"creatorId"`
	Name       string `gorm:"column:name;not null" json:"name"`
	Icon       string `gorm:"column:icon" json:"icon"`
}

func (Category) TableName() string {
	return "t_category"
}

type CreatePoiReq struct {
	CategoryId  string  `json:"categoryId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type UpdatePoiReq struct {
	CategoryId  *string  `json:"categoryId,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}
