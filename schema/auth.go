package schema

type (
	// LoginRequest is the body of POST /auth/login.
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// AuthenticationResponse is the result of login and refresh calls.
	AuthenticationResponse struct {
		Token         string `json:"token"`
		Authenticated bool   `json:"authenticated,omitempty"`
	}

	// RefreshRequest is the body of POST /auth/refresh.
	RefreshRequest struct {
		Token string `json:"token"`
	}

	// LogoutRequest is the body of POST /auth/logout.
	LogoutRequest struct {
		Token string `json:"token"`
	}
)
