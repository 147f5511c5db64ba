package handler

type assignRequest struct {
	UserIDs []string `json:"user_ids" validate:"required,min=1,dive,required"`
}

type changeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress completed cancelled"`
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listProjectsResponse struct {
	Data       []projectResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
