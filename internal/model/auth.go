package model

import "github.com/golang-jwt/jwt/v5"

// Role gates what workflow actions a user may take
type Role string

const (
	RoleAuditor       Role = "auditor"
	RoleMasterAuditor Role = "master_auditor"
	RolePartner       Role = "partner"
	RoleManagement    Role = "management"
)

// Identity stamps auditor/handledBy/masterAuditor fields on records.
// The core never authorizes with it; transport middleware does.
type Identity struct {
	ID       string `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
	Role     Role   `json:"role" bson:"role"`
}

// User is a login account
type User struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	Username string `json:"username" bson:"username"`
	Password string `json:"-" bson:"password"`
	Role     Role   `json:"role" bson:"role"`
}

// Identity converts a stored user to its stamping identity
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// UserClaims are JWT claims for authenticated users
type UserClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// Identity rebuilds the acting identity from token claims
func (c *UserClaims) Identity() Identity {
	return Identity{ID: c.UserID, Username: c.Username, Role: c.Role}
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
