package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is the capability carried by an access token. Producers publish
// listings; consumers claim them.
type Role string

const (
	RoleProducer Role = "producer"
	RoleConsumer Role = "consumer"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleProducer, RoleConsumer:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
