package handlers

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"devfolio/internal/middleware"
	"devfolio/internal/render"
	"devfolio/internal/session"
	"devfolio/internal/store"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
	issuer    string
}

// NewAuth creates a new Auth handler group. issuer names the TOTP
// enrollment in authenticator apps.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore, issuer string) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
		issuer:    issuer,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// If already logged in with 2FA complete, redirect to dashboard.
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.Admin(w, r, "login", &render.PageData{
		Title: "Sign In",
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	// Find the user by email.
	user, err := a.userStore.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.renderer.Admin(w, r, "login", &render.PageData{
			Title: "Sign In",
			Error: "An unexpected error occurred.",
		})
		return
	}

	// Validate credentials. The same message covers unknown email and
	// wrong password.
	if user == nil || !a.userStore.CheckPassword(user, password) {
		a.renderer.Admin(w, r, "login", &render.PageData{
			Title: "Sign In",
			Error: "Invalid email or password.",
		})
		return
	}

	// Create a session. TwoFADone starts as false — user must complete 2FA.
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		TwoFADone:   false,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Route based on 2FA status:
	// - Not set up yet → go to setup page
	// - Already set up → go to verification page
	if user.Needs2FASetup() {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
	}
}

// TwoFASetupPage generates a TOTP secret and displays the QR code.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa setup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// An enrolled user never sees a fresh secret; regenerating here would
	// invalidate their authenticator app.
	if user.TOTPEnabled {
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
		return
	}

	// Reuse a pending secret so a page reload keeps the QR the user may
	// have already scanned. Generate one only on the first visit.
	secret := user.TOTPSecret
	if secret == "" {
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      a.issuer,
			AccountName: sess.Email,
		})
		if err != nil {
			slog.Error("totp generate failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		secret = key.Secret()

		if err := a.userStore.SetTOTPSecret(sess.UserID, secret); err != nil {
			slog.Error("save totp secret failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	url := fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		a.issuer, sess.Email, secret, a.issuer)

	a.renderer.Admin(w, r, "2fa_setup", &render.PageData{
		Title: "Set Up Two-Factor Authentication",
		Data: map[string]any{
			"QRCode": encodeQR(url),
			"Secret": secret,
		},
	})
}

// TwoFAVerifyPage renders the 2FA code entry form (for users who already
// have 2FA set up).
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	a.renderer.Admin(w, r, "2fa_verify", &render.PageData{
		Title: "Two-Factor Authentication",
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
// Used both to confirm a first-time setup and for routine verification.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	code := r.FormValue("code")

	// Look up the user's TOTP secret.
	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.TOTPSecret == "" {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}

	// Validate the TOTP code.
	if !totp.Validate(code, user.TOTPSecret) {
		if !user.TOTPEnabled {
			// Back to the setup page with the same secret and QR.
			url := fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
				a.issuer, user.Email, user.TOTPSecret, a.issuer)
			a.renderer.Admin(w, r, "2fa_setup", &render.PageData{
				Title: "Set Up Two-Factor Authentication",
				Error: "Invalid code. Please try again.",
				Data: map[string]any{
					"QRCode": encodeQR(url),
					"Secret": user.TOTPSecret,
				},
			})
			return
		}

		a.renderer.Admin(w, r, "2fa_verify", &render.PageData{
			Title: "Two-Factor Authentication",
			Error: "Invalid code. Please try again.",
		})
		return
	}

	// If this is the first-time setup, enable TOTP in the database.
	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	// Mark 2FA as complete in the session.
	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// encodeQR renders an otpauth URL as a base64 PNG for inline display.
func encodeQR(url string) string {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(png)
}
