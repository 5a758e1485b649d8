package service

import (
	"context"

	"github.com/jotishBolds/district-bi-sub001/internal/dto"
)

type AuthService interface {
	Register(ctx context.Context, r dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, r dto.LoginRequest) (*dto.LoginResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, r dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error)
	ResetPassword(ctx context.Context, r dto.ResetPasswordRequest) error
}
