package models

// InfoUser is the authenticated user decoded from the token claims.
type InfoUser struct {
	ID        int
	Email     string
	Firstname string
	Lastname  string
	Read      bool
	Roles     []int
}

func (u InfoUser) FullName() string {
	if u.Lastname == "" {
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}
