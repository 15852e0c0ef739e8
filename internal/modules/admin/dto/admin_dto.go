package dto

type CreateStaffInput struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName string  `json:"first_name" binding:"required,max=100"`
	LastName  string  `json:"last_name" binding:"required,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
	Role      string  `json:"role"`
}

type UpdateStaffInput struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"is_active"`
}
