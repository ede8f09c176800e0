package dto

import "github.com/supportflow/opsdash/internal/domain"

// CreateUserRequest payload.
type CreateUserRequest struct {
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	Password  string           `json:"password"`
	Role      *domain.UserRole `json:"role"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r CreateUserRequest) Validate() map[string]any {
	details := map[string]any{}
	requireString(details, "username", r.Username)
	requireString(details, "email", r.Email)
	requireString(details, "password", r.Password)
	requireString(details, "firstName", r.FirstName)
	requireString(details, "lastName", r.LastName)
	if r.Role != nil && !domain.ValidRole(*r.Role) {
		details["role"] = "must be one of admin, agent, client"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// ToDomain builds the user with defaults resolved. Password hashing is
// the caller's concern.
func (r CreateUserRequest) ToDomain() domain.User {
	role := domain.RoleAgent
	if r.Role != nil {
		role = *r.Role
	}
	return domain.User{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		Role:      role,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}
