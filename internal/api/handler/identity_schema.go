package handler

// Request payloads for the identity endpoints. Validation tags give the
// request layer a fast fail; the identity service re-checks the same rules
// so they hold for any caller, not only HTTP.

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// publicProfile is the only account rendering that ever leaves the service.
type publicProfile struct {
	Email             string `json:"email"`
	PaymentIdentifier string `json:"paymentIdentifier"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  publicProfile `json:"user"`
}

type profileResponse struct {
	User    publicProfile `json:"user"`
	Balance float64       `json:"balance"`
}

type messageResponse struct {
	Message string `json:"message"`
}
