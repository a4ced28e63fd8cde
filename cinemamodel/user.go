package cinemamodel

type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
	Points      int        `json:"points"`
	Role        Role       `json:"role"`
	Status      UserStatus `json:"status"`
	LastLoginAt *string    `json:"lastLoginAt,omitempty"`
	CreatedAt   string     `json:"createdAt"`
}

// IdentityPatch maps a profile response onto the identity fields the session keeps.
func (u UserResponse) IdentityPatch() IdentityPatch {
	role := u.Role
	status := u.Status
	fullName := u.FullName
	email := u.Email
	points := u.Points
	return IdentityPatch{
		FullName:    &fullName,
		Email:       &email,
		PhoneNumber: u.PhoneNumber,
		AvatarURL:   u.AvatarURL,
		Points:      &points,
		Role:        &role,
		Status:      &status,
	}
}

type UpdateProfileRequest struct {
	FullName    *string `json:"fullName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AdminUpdateUserRequest struct {
	FullName    *string     `json:"fullName,omitempty"`
	PhoneNumber *string     `json:"phoneNumber,omitempty"`
	Role        *Role       `json:"role,omitempty"`
	Status      *UserStatus `json:"status,omitempty"`
	Points      *int        `json:"points,omitempty"`
}

type PointsRequest struct {
	Points int `json:"points"`
}
