package request

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Register struct {
	Email       string `validate:"required,email"          json:"email"`
	Password    string `validate:"required"                json:"password"`
	DisplayName string `validate:"omitempty,max=64"        json:"displayName"`
	PhoneNumber string `validate:"omitempty,e164"          json:"phoneNumber"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).Str("displayName", r.DisplayName)
}

func (r Register) MarshalJSON() ([]byte, error) {
	r.Password = "***"
	type R Register
	return json.Marshal(R(r))
}

type FindUserById struct {
	ID uuid.UUID `validate:"required" json:"id"`
}

type UpdateProfile struct {
	DisplayName string `validate:"omitempty,max=64" json:"displayName"`
	PhoneNumber string `validate:"omitempty,e164"   json:"phoneNumber"`
}
