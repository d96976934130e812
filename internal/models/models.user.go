// FilePath: internal/models/models.user.go
package models

// User is the root entity of the document store. Ownership of everything
// below it is positional: projects live inside their user, sensors inside
// their project, and so on.
type User struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Password string     `json:"password" readxs:"system" writexs:"system"`
	Projects []*Project `json:"projects"`
}

// PublicUser is the login/profile view of a user without credentials.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}
