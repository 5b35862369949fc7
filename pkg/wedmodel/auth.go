package wedmodel

type Credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}
