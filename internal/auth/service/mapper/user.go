package mapper

import (
	"github.com/pkravets/huddle-auth/internal/auth/domain"
	authdto "github.com/pkravets/huddle-auth/internal/auth/service/dto"
)

func UserToDTO(user domain.User) authdto.User {
	return authdto.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Handle:    user.Handle,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
