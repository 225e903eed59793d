package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"max=120"`
	LastName  string `json:"last_name" binding:"max=120"`
	IsAdmin   bool   `json:"is_admin"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	FirstName *string `json:"first_name" binding:"omitempty,max=120"`
	LastName  *string `json:"last_name" binding:"omitempty,max=120"`
	IsAdmin   *bool   `json:"is_admin"`
}
