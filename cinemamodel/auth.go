package cinemamodel

// Role is the fixed set of roles an identity can hold.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStaff    Role = "STAFF"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
	UserLocked   UserStatus = "LOCKED"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    string  `json:"fullName"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// AuthResponse is returned by login, register and refresh. The refresh credential
// itself never appears here; the server sets it as an httpOnly cookie.
type AuthResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	ExpiresIn   int64    `json:"expiresIn"` // seconds
	User        UserInfo `json:"user"`
}

// UserInfo is the identity the session owns.
type UserInfo struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Role        Role       `json:"role"`
	Points      int        `json:"points"`
	Status      UserStatus `json:"status,omitempty"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
}

// IdentityPatch carries the identity fields a profile update may change. Nil fields
// are left untouched.
type IdentityPatch struct {
	FullName    *string
	Email       *string
	PhoneNumber *string
	AvatarURL   *string
	Points      *int
	Role        *Role
	Status      *UserStatus
}

func (p IdentityPatch) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.PhoneNumber == nil && p.AvatarURL == nil &&
		p.Points == nil && p.Role == nil && p.Status == nil
}

// Apply returns a copy of u with the patch merged in.
func (u UserInfo) Apply(p IdentityPatch) UserInfo {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		v := *p.PhoneNumber
		u.PhoneNumber = &v
	}
	if p.AvatarURL != nil {
		v := *p.AvatarURL
		u.AvatarURL = &v
	}
	if p.Points != nil {
		u.Points = *p.Points
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	return u
}

// Clone deep-copies the optional fields so callers cannot mutate session state.
func (u UserInfo) Clone() UserInfo {
	return u.Apply(IdentityPatch{PhoneNumber: u.PhoneNumber, AvatarURL: u.AvatarURL})
}
