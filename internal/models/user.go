package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/campusconnect/internal/shared"
)

// User is a finder or seeker profile. The credential secret lives only in the store.
type User struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Skills          []string        `json:"skills"`
	Interests       []string        `json:"interests"`
	Bio             string          `json:"bio"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty"`
	ProfilePicture  string          `json:"profilePicture,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// NewUser builds an unsaved user with the signup fields populated.
func NewUser(email, name string, skills []string, bio string) *User {
	return &User{
		Email:     email,
		Name:      name,
		Skills:    cloneStrings(skills),
		Interests: []string{},
		Bio:       bio,
	}
}

func (u *User) Key() string        { return u.ID }
func (u *User) Created() time.Time { return u.CreatedAt }

// Validate requires an email, the only field the store keys on.
func (u *User) Validate() error {
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", shared.ErrInvalidInput)
	}
	return nil
}

// UserPatch carries the fields of a profile update. Nil fields are left untouched; a non-nil
// empty slice clears the list.
type UserPatch struct {
	Email           *string
	Secret          *string
	Name            *string
	Skills          []string
	Interests       []string
	Bio             *string
	ExperienceLevel *ExperienceLevel
	ProfilePicture  *string
}

// Apply shallow-merges the patch over u. The secret is handled by the store.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Skills != nil {
		u.Skills = cloneStrings(p.Skills)
	}
	if p.Interests != nil {
		u.Interests = cloneStrings(p.Interests)
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.ExperienceLevel != nil {
		u.ExperienceLevel = *p.ExperienceLevel
	}
	if p.ProfilePicture != nil {
		u.ProfilePicture = *p.ProfilePicture
	}
}

// UserFilter selects users. An empty Email matches everyone.
type UserFilter struct {
	Email string
}
