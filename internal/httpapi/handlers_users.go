package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/PabloPavan/varejao_api/internal/apperrors"
	"github.com/PabloPavan/varejao_api/internal/ratelimit"
	"github.com/PabloPavan/varejao_api/internal/telemetry"
	"github.com/PabloPavan/varejao_api/internal/users"
	"go.opentelemetry.io/otel/attribute"
)

const (
	msgUserRegistered = "Usuário cadastrado com sucesso!"
	msgLoggedIn       = "Login realizado com sucesso!"
	msgTooManyLogins  = "Muitas tentativas de login. Tente novamente em instantes."
)

type UsersService interface {
	Register(ctx context.Context, in users.RegisterInput) (*users.User, error)
	Login(ctx context.Context, in users.LoginInput) (*users.User, error)
}

type UsersHandler struct {
	Service UsersService
	Limiter ratelimit.Limiter
}

// Register
// @Summary Register a customer
// @Tags users
// @Accept json
// @Produce json
// @Param body body RegisterDTO true "customer"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /register [post]
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(w, r, err)
		return
	}

	u, err := h.Service.Register(r.Context(), req.Input())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	telemetry.LogInfo(r.Context(), "user registered",
		telemetry.LogString("event", "user.registered"),
		telemetry.LogString("user.id", u.ID),
	)

	writeMessage(w, http.StatusCreated, msgUserRegistered)
}

// Login
// @Summary Login
// @Description Checks credentials. No session or token is issued.
// @Tags users
// @Accept json
// @Produce json
// @Param body body LoginDTO true "credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Failure 429 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /login [post]
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(w, r, err)
		return
	}

	ctx := r.Context()

	if h.Limiter != nil {
		// per account; forwarded client addresses can be rotated
		key := ratelimit.Key("login", req.Email)
		limitCtx, span := telemetry.StartSpan(ctx, "ratelimit.login",
			attribute.String("ratelimit.key", key),
		)
		allowed, retryAfter, err := h.Limiter.Allow(limitCtx, key)
		telemetry.EndSpan(span, err)
		if err != nil {
			// fail open
			telemetry.LogWarn(ctx, "login rate limiter unavailable",
				telemetry.LogErr(err),
			)
		} else if !allowed {
			telemetry.LogWarn(ctx, "login rate limited",
				telemetry.LogString("event", "auth.login.rate_limited"),
				telemetry.LogString("client.ip", clientIP(r)),
			)
			writeAppError(w, r, apperrors.RateLimit(msgTooManyLogins, retryAfter))
			return
		}
	}

	u, err := h.Service.Login(ctx, users.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnauthorized {
			telemetry.LogInfo(ctx, "login failed",
				telemetry.LogString("event", "auth.login.failed"),
			)
		}
		writeAppError(w, r, err)
		return
	}

	telemetry.LogInfo(ctx, "login succeeded",
		telemetry.LogString("event", "auth.login.succeeded"),
		telemetry.LogString("user.id", u.ID),
	)

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: msgLoggedIn,
		User:    newUserView(u),
	})
}

// clientIP expects middleware.RealIP to have rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
