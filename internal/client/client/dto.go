package client

import "github.com/dmitrijs2005/userdir/internal/client/models"

// Wire shapes of the directory service.

type userDTO struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

func (d userDTO) toModel() models.User {
	return models.User{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		AvatarURL: d.Avatar,
	}
}

type listUsersResponse struct {
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
	Data       []userDTO `json:"data"`
}

type getUserResponse struct {
	Data userDTO `json:"data"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type updateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

func patchToDTO(p models.UserPatch) updateUserRequest {
	return updateUserRequest{FirstName: p.FirstName, LastName: p.LastName, Email: p.Email, Avatar: p.AvatarURL}
}

type updateUserResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	UpdatedAt string `json:"updatedAt"`
}

type apiError struct {
	Error string `json:"error"`
}
