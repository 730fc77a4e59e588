package user

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Disabled     bool
}
