package response

import (
	"github.com/prodexpert/expertise-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
