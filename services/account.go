package services

import (
	"context"
	"strings"

	"storefront-service/clients"
	"storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/models"

	"go.uber.org/zap"
)

const (
	MsgRegistered          = "Account created successfully! Redirecting to login..."
	MsgProfileUpdated      = "Profile updated successfully! Please login again."
	MsgProfileFailed       = "Failed to update profile, please try again"
	MsgPasswordChanged     = "Password changed successfully! Please login again."
	MsgPasswordFailed      = "Failed to change password"
	MsgResetCodeSent       = "Reset code sent to your email"
	MsgResetCodeFailed     = "Failed to send reset code"
	MsgResetCodeInvalid    = "Invalid reset code"
	MsgResetDone           = "Password reset successfully! Please login."
	MsgResetFailed         = "Failed to reset password"
	MsgAddressAdded        = "Address added successfully!"
	MsgAddressAddFailed    = "Failed to add address"
	MsgAddressUpdated      = "Address updated successfully!"
	MsgAddressUpdateFailed = "Failed to update address"
	MsgAddressDeleted      = "Address deleted successfully!"
	MsgAddressDeleteFailed = "Failed to delete address"
	MsgOrdersFailed        = "Failed to load orders. Please try again."
	MsgSignedOut           = "You have been signed out"
)

// AccountService covers sign-in, registration, password reset and the profile page.
type AccountService struct {
	api CommerceAPI
}

func NewAccountService(api CommerceAPI) *AccountService {
	return &AccountService{api: api}
}

// SignIn exchanges credentials for a session user. Every failure is reported as invalid
// credentials; missing credentials never reach the API.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (*models.SessionUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.ErrInvalidCredentials
	}

	resp, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		if !clients.IsClientError(err) {
			logger.Error(ctx, "sign in failed", err)
		}
		return nil, errors.Wrap(errors.ErrInvalidCredentials, err)
	}
	if resp.Message != messageSuccess || resp.User == nil || resp.Token == "" {
		return nil, errors.ErrInvalidCredentials
	}

	return &models.SessionUser{
		ID:    resp.User.Email,
		Name:  resp.User.Name,
		Email: resp.User.Email,
		Phone: resp.User.Phone,
		Role:  resp.User.Role,
		Token: resp.Token,
	}, nil
}

// Register creates the account. The API's own message is surfaced on rejection.
func (s *AccountService) Register(ctx context.Context, v *models.VisitorState, req models.SignUpRequest) error {
	resp, err := s.api.SignUp(ctx, req)
	if err != nil {
		logger.Warn(ctx, "registration rejected", zap.String("email", req.Email), zap.Error(err))
		return upstreamError(err)
	}
	if resp.User == nil {
		if resp.Message != "" {
			return errors.New(errors.ErrRegistrationFailed.Code, resp.Message, nil)
		}
		return errors.ErrRegistrationFailed
	}
	v.AddFlash(FlashSuccess, MsgRegistered)
	return nil
}

// RequestReset sends a reset code and moves the visitor to the code step.
func (s *AccountService) RequestReset(ctx context.Context, v *models.VisitorState, email string) error {
	resp, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		return upstreamError(err)
	}
	if resp.StatusMsg != messageSuccess {
		return errors.New(errors.ErrBadRequest.Code, firstNonEmpty(resp.Message, MsgResetCodeFailed), nil)
	}
	v.ResetEmail = email
	v.ResetVerified = false
	v.AddFlash(FlashInfo, MsgResetCodeSent)
	return nil
}

// ResendReset re-requests the code for the email already on file.
func (s *AccountService) ResendReset(ctx context.Context, v *models.VisitorState) error {
	if v.ResetEmail == "" {
		return errors.ErrResetNotStarted
	}
	return s.RequestReset(ctx, v, v.ResetEmail)
}

// VerifyReset checks the emailed code. The API answers status "Success" on a match.
func (s *AccountService) VerifyReset(ctx context.Context, v *models.VisitorState, code string) error {
	if v.ResetEmail == "" {
		return errors.ErrResetNotStarted
	}
	resp, err := s.api.VerifyResetCode(ctx, code)
	if err != nil {
		return upstreamError(err)
	}
	if !strings.EqualFold(resp.Status, messageSuccess) {
		return errors.New(errors.ErrBadRequest.Code, MsgResetCodeInvalid, nil)
	}
	v.ResetVerified = true
	return nil
}

// CompleteReset sets the new password once the code was verified.
func (s *AccountService) CompleteReset(ctx context.Context, v *models.VisitorState, password string) error {
	if v.ResetEmail == "" || !v.ResetVerified {
		return errors.ErrResetNotStarted
	}
	resp, err := s.api.ResetPassword(ctx, v.ResetEmail, password)
	if err != nil {
		return upstreamError(err)
	}
	if resp.Token == "" {
		return errors.New(errors.ErrBadGateway.Code, MsgResetFailed, nil)
	}
	v.ClearReset()
	v.AddFlash(FlashSuccess, MsgResetDone)
	return nil
}

// UpdateProfile sends only the fields that differ from the session. On success the caller
// must end the session: the API token no longer matches the account.
func (s *AccountService) UpdateProfile(ctx context.Context, v *models.VisitorState, user *models.SessionUser, name, email string) error {
	if err := requireUser(user); err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if name = strings.TrimSpace(name); name != "" && name != user.Name {
		req.Name = &name
	}
	if email = strings.TrimSpace(email); email != "" && email != user.Email {
		req.Email = &email
	}
	if req.Empty() {
		v.AddFlash(FlashError, errors.ErrNoChanges.Message)
		return errors.ErrNoChanges
	}

	resp, err := s.api.UpdateMe(ctx, user.Token, req)
	if err == nil && resp.Message != messageSuccess {
		err = errors.New(errors.ErrBadGateway.Code, resp.Message, nil)
	}
	if err != nil {
		logger.Error(ctx, "profile update failed", err)
		v.AddFlash(FlashError, MsgProfileFailed)
		return upstreamError(err)
	}
	v.AddFlash(FlashSuccess, MsgProfileUpdated)
	return nil
}

// ChangePassword validates the pair locally before calling the API. Success also ends the
// session.
func (s *AccountService) ChangePassword(ctx context.Context, v *models.VisitorState, user *models.SessionUser, current, password, confirm string) error {
	if err := requireUser(user); err != nil {
		return err
	}
	if password != confirm {
		v.AddFlash(FlashError, errors.ErrPasswordMismatch.Message)
		return errors.ErrPasswordMismatch
	}
	if len(password) < 6 {
		v.AddFlash(FlashError, errors.ErrPasswordTooShort.Message)
		return errors.ErrPasswordTooShort
	}

	resp, err := s.api.ChangePassword(ctx, user.Token, models.ChangePasswordRequest{
		CurrentPassword: current,
		Password:        password,
		RePassword:      confirm,
	})
	if err == nil && resp.Message != messageSuccess {
		err = errors.New(errors.ErrBadRequest.Code, firstNonEmpty(resp.Message, MsgPasswordFailed), nil)
	}
	if err != nil {
		logger.Warn(ctx, "password change failed", zap.Error(err))
		msg := MsgPasswordFailed
		if appErr, ok := errors.As(upstreamError(err)); ok && appErr.Code < 500 {
			msg = appErr.Message
		}
		v.AddFlash(FlashError, msg)
		return upstreamError(err)
	}
	v.AddFlash(FlashSuccess, MsgPasswordChanged)
	return nil
}

func (s *AccountService) Addresses(ctx context.Context, user *models.SessionUser) ([]models.Address, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	resp, err := s.api.GetAddresses(ctx, user.Token)
	if err != nil {
		return nil, upstreamError(err)
	}
	return resp.Data, nil
}

func (s *AccountService) AddAddress(ctx context.Context, v *models.VisitorState, user *models.SessionUser, form models.AddressForm) error {
	if err := requireUser(user); err != nil {
		return err
	}
	if _, err := s.api.AddAddress(ctx, user.Token, form); err != nil {
		logger.Error(ctx, "add address failed", err)
		v.AddFlash(FlashError, MsgAddressAddFailed)
		return upstreamError(err)
	}
	v.AddFlash(FlashSuccess, MsgAddressAdded)
	return nil
}

func (s *AccountService) RemoveAddress(ctx context.Context, v *models.VisitorState, user *models.SessionUser, id string) error {
	if err := requireUser(user); err != nil {
		return err
	}
	if _, err := s.api.RemoveAddress(ctx, user.Token, id); err != nil {
		logger.Error(ctx, "remove address failed", err, zap.String("address_id", id))
		v.AddFlash(FlashError, MsgAddressDeleteFailed)
		return upstreamError(err)
	}
	v.AddFlash(FlashSuccess, MsgAddressDeleted)
	return nil
}

// UpdateAddress replaces an address. The API has no update, so it is remove then add.
func (s *AccountService) UpdateAddress(ctx context.Context, v *models.VisitorState, user *models.SessionUser, id string, form models.AddressForm) error {
	if err := requireUser(user); err != nil {
		return err
	}
	if _, err := s.api.RemoveAddress(ctx, user.Token, id); err != nil {
		logger.Error(ctx, "update address: remove failed", err, zap.String("address_id", id))
		v.AddFlash(FlashError, MsgAddressUpdateFailed)
		return upstreamError(err)
	}
	if _, err := s.api.AddAddress(ctx, user.Token, form); err != nil {
		logger.Error(ctx, "update address: add failed", err, zap.String("address_id", id))
		v.AddFlash(FlashError, MsgAddressUpdateFailed)
		return upstreamError(err)
	}
	v.AddFlash(FlashSuccess, MsgAddressUpdated)
	return nil
}

// Orders lists the orders of the visitor's reconciled cart owner.
func (s *AccountService) Orders(ctx context.Context, v *models.VisitorState, user *models.SessionUser) ([]models.Order, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if v.CartOwner == "" {
		return nil, errors.ErrMissingCartOwner
	}
	orders, err := s.api.GetUserOrders(ctx, user.Token, v.CartOwner)
	if err != nil {
		logger.Error(ctx, "orders load failed", err, zap.String("owner", v.CartOwner))
		return nil, upstreamError(err)
	}
	return orders, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
