package model

type User struct {
	BaseModel
	UserId        string `gorm:"column:user_id;not null;uniqueIndex" json:"userId"`
	Username      string `gorm:"column:username" json:"username"`
	Nickname      string `gorm:"column:nickname" json:"nickname"`
	Password      string `gorm:"column:password" json:"-"`
	Avatar        string `gorm:"column:avatar" json:"avatar"`
	Email         string `gorm:"column:email;not null;uniqueIndex" json:"email"`
	EmailVerified int    `gorm:"column:email_verified;default:0" json:"emailVerified"` // 0: unverified, 1: verified
	IsEnabled     int    `gorm:"column:is_enabled;default:1" json:"isEnabled"`         // 0: disabled, 1: enabled
}

func (User) TableName() string {
	return "t_user"
}

// Principal is the authenticated (or anonymous) actor performing an
// operation. A nil *Principal means anonymous.
type Principal struct {
	UserId string
	Email  string
}

// PrincipalOf builds the principal for a user row.
func PrincipalOf(u *User) *Principal {
	if u == nil {
		return nil
	}
	return &Principal{UserId: u.UserId, Email: u.Email}
}

type Register struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResp struct {
	UserInfo UserInfo          `json:"userInfo"`
	Token    map[string]string `json:"token"`
	ExpireAt int64             `json:"-"`
	CreateAt int64             `json:"-"`
}

type UserInfo struct {
	UserId   string `json:"userId"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
}

// TokenInfo is the access token record stored in redis.
type TokenInfo struct {
	AccessToken string `json:"accessToken"`
	ExpireAt    int64  `json:"expireAt"`
	CreateAt    int64  `json:"createAt"`
}

// RegistrationData is supplied by an invitee accepting an invitation
// without an existing account.
type RegistrationData struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

func (r *RegistrationData) Complete() bool {
	return r != nil && r.Nickname != "" && r.Password != ""
}

// NewUserFromInvite builds the pre-verified account provisioned when an
// invitee accepts. Receiving the tokenized invitation already proved control
// of the mailbox.
func NewUserFromInvite(userId, email, passwordHash, nickname string) *User {
	return &User{
		UserId:        userId,
		Username:      nickname,
		Nickname:      nickname,
		Password:      passwordHash,
		Email:         email,
		EmailVerified: 1,
		IsEnabled:     1,
	}
}
