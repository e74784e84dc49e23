package response

import "riviera-booking/internal/domain/user"

type UserResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:     u.ID().String(),
		Email:  u.Email().Value(),
		Role:   u.Role().String(),
		Active: u.IsActive(),
	}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
