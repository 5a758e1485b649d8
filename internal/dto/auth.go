package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID                    string `json:"userId"`
	RequiresEmailVerification bool   `json:"requiresEmailVerification"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token       string       `json:"token"`
	ExpiresIn   int64        `json:"expiresIn"`
	RequiresOTP bool         `json:"requiresOtp"`
	User        *UserSummary `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	Type  string `json:"type,omitempty"`
}

type VerifyOTPResponse struct {
	Success    bool   `json:"success"`
	Verified   bool   `json:"verified,omitempty"`
	ResetToken string `json:"resetToken,omitempty"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Password string `json:"password"`
}
