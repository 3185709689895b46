package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/relistlabs/relist-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	FullName       *string   `json:"fullName,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Address        *string   `json:"address,omitempty"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	Username     string
	PasswordHash string
	FullName     *string
	Phone        *string
	Address      *string
}

// UpdateProfileDTO applies only the fields the caller provided. Nil means
// "leave unchanged".
type UpdateProfileDTO struct {
	Username       *string
	FullName       *string
	Phone          *string
	Address        *string
	ProfilePicture *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		FullName:       u.FullName,
		Phone:          u.Phone,
		Address:        u.Address,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        c.Email,
		Username:     c.Username,
		PasswordHash: c.PasswordHash,
		FullName:     c.FullName,
		Phone:        c.Phone,
		Address:      c.Address,
	}
}

// Changes flattens the DTO into a column update map, skipping nil fields.
func (u UpdateProfileDTO) Changes() map[string]any {
	changes := map[string]any{}
	if u.Username != nil {
		changes["username"] = *u.Username
	}
	if u.FullName != nil {
		changes["full_name"] = *u.FullName
	}
	if u.Phone != nil {
		changes["phone"] = *u.Phone
	}
	if u.Address != nil {
		changes["address"] = *u.Address
	}
	if u.ProfilePicture != nil {
		changes["profile_picture"] = *u.ProfilePicture
	}
	return changes
}
