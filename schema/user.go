package schema

type (
	// SimpleUser is the compact user reference embedded in audit fields.
	SimpleUser struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email,omitempty"`
	}

	// Role describes one granted role.
	Role struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		CreateAt    string `json:"createAt,omitempty"`
	}

	// UserInfo is the result of GET /users/me.
	UserInfo struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email,omitempty"`
		Roles    []Role `json:"roles,omitempty"`
	}

	// ChangePasswordRequest is the body of PUT /users/change-password.
	ChangePasswordRequest struct {
		Password             string `json:"password"`
		NewPassword          string `json:"newPassword"`
		ConfirmationPassword string `json:"confirmationPassword"`
	}

	// Audit carries the creation and update trail shared by most resources.
	Audit struct {
		CreateBy *SimpleUser `json:"createBy,omitempty"`
		UpdateBy *SimpleUser `json:"updateBy,omitempty"`
		CreateAt string      `json:"createAt,omitempty"`
		UpdateAt string      `json:"updateAt,omitempty"`
	}
)
