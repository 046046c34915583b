package model

import "time"

// MapInvitation is a token-addressed, time-boxed, single-use offer of a role
// on a map to an e-mail address.
type MapInvitation struct {
	BaseModel
	InvitationId string    `gorm:"column:invitation_id;not null;uniqueIndex" json:"invitationId"`
	MapId        string    `gorm:"column:map_id;not null;index" json:"mapId"`
	Email        string    `gorm:"column:email;not null;index" json:"email"`
	Role         Role      `gorm:"column:role;not null" json:"role"`
	Token        string    `gorm:"column:token;not null;uniqueIndex" json:"-"`
	InvitedBy    string    `gorm:"column:invited_by;not null" json:"invitedBy"`
	Status       int       `gorm:"column:status;default:0" json:"status"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null" json:"expiresAt"`
}

func (MapInvitation) TableName() string {
	return "t_map_invitation"
}

// Invitation status. Pending is the only non-terminal state; transitions are
// one-way and applied through status-guarded conditional updates.
const (
	InvitationStatusPending   = 0
	InvitationStatusAccepted  = 1
	InvitationStatusRejected  = 2
	InvitationStatusExpired   = 3
	InvitationStatusCancelled = 4
)

// InvitationTTL is the validity window of a new invitation.
const InvitationTTL = 7 * 24 * time.Hour

// Expired reports whether the invitation's deadline has passed at now.
func (i *MapInvitation) Expired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}

// Terminal reports whether the invitation can no longer transition.
func (i *MapInvitation) Terminal() bool {
	return i.Status != InvitationStatusPending
}

type InviteReq struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// RespondAction is the invitee's decision on an invitation.
type RespondAction string

const (
	RespondAccept RespondAction = "accept"
	RespondReject RespondAction = "reject"
)

type RespondReq struct {
	Action       RespondAction     `json:"action"`
	Registration *RegistrationData `json:"registration,omitempty"`
}

type InvitationResp struct {
	InvitationId string    `json:"invitationId"`
	MapId        string    `json:"mapId"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Status       int       `json:"status"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func ToInvitationResp(i *MapInvitation) *InvitationResp {
	return &InvitationResp{
		InvitationId: i.InvitationId,
		MapId:        i.MapId,
		Email:        i.Email,
		Role:         i.Role,
		Status:       i.Status,
		ExpiresAt:    i.ExpiresAt,
	}
}
