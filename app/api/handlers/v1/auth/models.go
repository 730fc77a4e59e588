package auth

type Credentials struct {
	Email    string `json:"email" example:"someone@example.com"`
	Password string `json:"password" example:"hunter22"`
}

type Token struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
