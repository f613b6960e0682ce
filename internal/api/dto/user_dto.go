package dto

// CreateUserRequest payload for registration.
type CreateUserRequest struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

// UpdateUserRequest is a partial update; absent fields stay unchanged.
type UpdateUserRequest struct {
	Email    *string  `json:"email,omitempty"`
	Name     *string  `json:"name,omitempty"`
	Password *string  `json:"password,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// PaginationQuery carries list paging parameters.
type PaginationQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}
