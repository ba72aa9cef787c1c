package controllers

import (
	"net/http"
	"strings"

	"storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"
	"storefront-service/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginView struct {
	CallbackURL string `json:"callbackUrl"`
	Email       string `json:"email,omitempty"`
	Error       string `json:"error,omitempty"`
}

type registerFields struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type registerView struct {
	Form   registerFields `json:"form"`
	Errors []string       `json:"errors,omitempty"`
}

type resetView struct {
	Step  string `json:"step"`
	Email string `json:"email,omitempty"`
	Error string `json:"error,omitempty"`
}

// AuthController handles sign-in, registration, password reset and sign-out.
type AuthController struct {
	Accounts *services.AccountService
	Carts    *services.CartService
	Sessions *session.Manager
}

func NewAuthController(accounts *services.AccountService, carts *services.CartService, sessions *session.Manager) *AuthController {
	return &AuthController{Accounts: accounts, Carts: carts, Sessions: sessions}
}

func (ac *AuthController) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", "Sign in", loginView{
		CallbackURL: services.SafeCallback(c.Query("callbackUrl")),
	})
}

// Login signs the visitor in, reconciles the cart with the new identity and finishes any
// add-to-cart that sent them here.
func (ac *AuthController) Login(c *gin.Context) {
	var form LoginForm
	_ = c.ShouldBind(&form)
	view := loginView{CallbackURL: services.SafeCallback(form.CallbackURL), Email: form.Email}

	if err := validate.Struct(form); err != nil {
		view.Error = strings.Join(validationMessages(err), ". ")
		render(c, http.StatusBadRequest, "login.html", "Sign in", view)
		return
	}

	ctx := c.Request.Context()
	user, err := ac.Accounts.SignIn(ctx, form.Email, form.Password)
	if err != nil {
		_ = c.Error(err)
		view.Error = errors.ErrInvalidCredentials.Message
		render(c, http.StatusUnauthorized, "login.html", "Sign in", view)
		return
	}
	if err := ac.Sessions.Issue(c, *user); err != nil {
		renderError(c, errors.Wrap(errors.ErrInternalServer, err))
		return
	}
	middleware.SetUser(c, user)

	v := middleware.VisitorFrom(c)
	if _, err := ac.Carts.Refresh(ctx, v, user); err != nil {
		logger.Warn(ctx, "cart refresh after sign in failed", zap.Error(err))
	}
	ac.Carts.ResumePending(ctx, v, user)

	logger.Info(ctx, "signed in", zap.String("email", user.Email))
	respond(c, http.StatusOK, view.CallbackURL, user)
}

func (ac *AuthController) Logout(c *gin.Context) {
	ac.Sessions.Clear(c)
	middleware.SetUser(c, nil)
	middleware.VisitorFrom(c).AddFlash(services.FlashInfo, services.MsgSignedOut)
	respond(c, http.StatusOK, "/", nil)
}

func (ac *AuthController) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", "Create account", registerView{})
}

func (ac *AuthController) Register(c *gin.Context) {
	var form RegisterForm
	_ = c.ShouldBind(&form)
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)

	view := registerView{Form: registerFields{Name: form.Name, Email: form.Email, Phone: form.Phone}}
	if err := validate.Struct(form); err != nil {
		view.Errors = validationMessages(err)
		render(c, http.StatusBadRequest, "register.html", "Create account", view)
		return
	}

	err := ac.Accounts.Register(c.Request.Context(), middleware.VisitorFrom(c), models.SignUpRequest{
		Name:       form.Name,
		Email:      form.Email,
		Password:   form.Password,
		RePassword: form.RePassword,
		Phone:      form.Phone,
	})
	if err != nil {
		_ = c.Error(err)
		appErr, _ := errors.As(err)
		msg := errors.ErrRegistrationFailed.Message
		if appErr != nil && appErr.Code < http.StatusInternalServerError {
			msg = appErr.Message
		}
		view.Errors = []string{msg}
		render(c, http.StatusBadRequest, "register.html", "Create account", view)
		return
	}
	respond(c, http.StatusCreated, "/auth/login", nil)
}

// ForgotPasswordPage shows the reset step the visitor is on. ?restart=true starts over.
func (ac *AuthController) ForgotPasswordPage(c *gin.Context) {
	v := middleware.VisitorFrom(c)
	if c.Query("restart") == "true" {
		v.ClearReset()
	}
	render(c, http.StatusOK, "forgot_password.html", "Reset password", resetView{Step: v.ResetStep(), Email: v.ResetEmail})
}

// ForgotPassword advances the reset flow. The form's step field names the action: email,
// code, resend or password.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	ctx := c.Request.Context()
	v := middleware.VisitorFrom(c)

	var err error
	switch c.PostForm("step") {
	case "email":
		var form ResetEmailForm
		_ = c.ShouldBind(&form)
		form.Email = strings.TrimSpace(form.Email)
		if err = validate.Struct(form); err == nil {
			err = ac.Accounts.RequestReset(ctx, v, form.Email)
		}
	case "code":
		var form ResetCodeForm
		_ = c.ShouldBind(&form)
		form.ResetCode = strings.TrimSpace(form.ResetCode)
		if err = validate.Struct(form); err == nil {
			err = ac.Accounts.VerifyReset(ctx, v, form.ResetCode)
		}
	case "resend":
		err = ac.Accounts.ResendReset(ctx, v)
	case "password":
		var form ResetPasswordForm
		_ = c.ShouldBind(&form)
		if err = validate.Struct(form); err == nil {
			err = ac.Accounts.CompleteReset(ctx, v, form.Password)
			if err == nil {
				respond(c, http.StatusOK, "/auth/login", nil)
				return
			}
		}
	default:
		err = errors.ErrInvalidInput
	}

	if err != nil {
		_ = c.Error(err)
		view := resetView{Step: v.ResetStep(), Email: v.ResetEmail, Error: resetMessage(err)}
		render(c, http.StatusBadRequest, "forgot_password.html", "Reset password", view)
		return
	}
	respond(c, http.StatusOK, "/auth/forgotPassword", gin.H{"step": v.ResetStep()})
}

func resetMessage(err error) string {
	if appErr, ok := errors.As(err); ok {
		if appErr.Code >= http.StatusInternalServerError {
			return services.MsgResetFailed
		}
		return appErr.Message
	}
	return strings.Join(validationMessages(err), ". ")
}
