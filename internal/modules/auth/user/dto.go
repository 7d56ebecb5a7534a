package user

// RegisterDTO creates the account.
type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name"     binding:"max=64"`
	Mail     string `json:"mail"     binding:"omitempty,email"`
}

// LoginDTO authenticates with username and password.
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserDTO edits profile fields. Empty fields are left alone.
type UpdateUserDTO struct {
	Name      string `json:"name"      binding:"max=64"`
	Mail      string `json:"mail"      binding:"omitempty,email"`
	Introduce string `json:"introduce" binding:"max=500"`
}
