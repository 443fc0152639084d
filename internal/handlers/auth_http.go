package handlers

import (
	"mime"
	"net/http"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/middleware"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/service"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"
)

type AuthHTTP struct {
	svc *service.AuthService
}

func NewAuthHTTP(s *service.AuthService) *AuthHTTP {
	return &AuthHTTP{svc: s}
}

// POST /signup
func (h *AuthHTTP) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := decode(w, r, &in, false); err != nil {
			fail(w, r, err)
			return
		}
		u, err := h.svc.Register(r.Context(), in.Email, in.Password, in.Role)
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusCreated, u)
	}
}

// POST /login accepts {"email","password"} or the OAuth2 password form
// (username=&password=).
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			if err := r.ParseForm(); err != nil {
				fail(w, r, errs.Validation("invalid form"))
				return
			}
			in.Email, in.Password = r.PostForm.Get("username"), r.PostForm.Get("password")
		} else if err := decode(w, r, &in, false); err != nil {
			fail(w, r, err)
			return
		}
		if in.Email == "" || in.Password == "" {
			fail(w, r, errs.Validation("email and password are required"))
			return
		}

		token, _, err := h.svc.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}

// GET /me
func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.AccountFrom(r.Context())
		if !ok {
			fail(w, r, errs.ErrUnauthenticated)
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}
