package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
	"github.com/jobtrack/jobtrack-ui/internal/service"
)

// SessionHandlers serves the register, logon, and logoff routes.
type SessionHandlers struct {
	Auth    AuthService
	Cookies SessionCookies
	T       *TemplateRenderer
	UI      *UIHandlers
	Logger  *slog.Logger
}

func registerPageMeta() PageMeta {
	return PageMeta{Title: "Register - Jobtrack", PageTitle: "Register", CurrentPage: PageRegister}
}

func logonPageMeta() PageMeta {
	return PageMeta{Title: "Logon - Jobtrack", PageTitle: "Logon", CurrentPage: PageLogon}
}

// ShowRegister renders the registration form.
// GET /sessions/register.
func (h *SessionHandlers) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderRegisterForm(w, r, http.StatusOK, NewTemplateData(r, registerPageMeta()).
		With("FormData", model.RegisterRequest{}).
		Build())
}

// Register creates the account and establishes the first session in one
// step, so registration doubles as login.
// POST /sessions/register.
func (h *SessionHandlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterForm(w, r, http.StatusBadRequest, NewTemplateData(r, registerPageMeta()).
			WithError("Could not read the submitted form.").
			With("FormData", model.RegisterRequest{}).
			Build())
		return
	}

	req := &model.RegisterRequest{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("password_confirm"),
	}

	user, err := h.Auth.Register(r.Context(), req)
	if err != nil {
		fieldErrors, generalError, ok := classifyFormError(err)
		if !ok {
			h.UI.ServerError(w, r, err)
			return
		}
		if generalError == "" {
			generalError = errMsgFixBelow
		}
		// Secrets never round-trip back into the form.
		h.renderRegisterForm(w, r, http.StatusBadRequest, NewTemplateData(r, registerPageMeta()).
			WithFieldErrors(fieldErrors).
			WithError(generalError).
			With("FormData", model.RegisterRequest{Name: req.Name, Email: req.Email}).
			Build())
		return
	}

	h.establishAndRedirect(w, r, user, "Welcome, "+user.Name+"!")
}

// ShowLogon renders the logon form, or sends an already-authenticated
// visitor home.
// GET /sessions/logon.
func (h *SessionHandlers) ShowLogon(w http.ResponseWriter, r *http.Request) {
	if IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderLogonForm(w, r, http.StatusOK, NewTemplateData(r, logonPageMeta()).
		With("FormData", model.LogonRequest{}).
		Build())
}

// Logon authenticates the credentials and rotates the session.
// POST /sessions/logon.
func (h *SessionHandlers) Logon(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogonForm(w, r, http.StatusBadRequest, NewTemplateData(r, logonPageMeta()).
			WithError("Could not read the submitted form.").
			With("FormData", model.LogonRequest{}).
			Build())
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.Auth.Authenticate(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.UI.ServerError(w, r, err)
			return
		}
		h.renderLogonForm(w, r, http.StatusBadRequest, NewTemplateData(r, logonPageMeta()).
			WithError("Invalid email or password.").
			With("FormData", model.LogonRequest{Email: email}).
			Build())
		return
	}

	h.establishAndRedirect(w, r, user, "Welcome back, "+user.Name+"!")
}

// Logoff destroys the server-side session and hands the browser a fresh
// anonymous one.
// POST /sessions/logoff.
func (h *SessionHandlers) Logoff(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess != nil {
		if err := h.Auth.Logout(r.Context(), sess.ID); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}

	anon, err := h.Auth.NewAnonymousSession(r.Context())
	if err != nil {
		// Without a replacement session, just drop the cookie.
		h.Cookies.Clear(w)
		ReplaceSessionInContext(r.Context(), nil)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	anon.AddFlash(domainauth.FlashInfo, "You have been logged off.")
	ReplaceSessionInContext(r.Context(), &anon)
	h.Cookies.Write(w, &anon)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// establishAndRedirect rotates the session onto the given identity, queues
// the flash, and sends the browser to its remembered destination. ReturnTo
// is consumed at most once: the rotated session never carries it forward.
func (h *SessionHandlers) establishAndRedirect(
	w http.ResponseWriter,
	r *http.Request,
	user *model.User,
	flash string,
) {
	prev := GetSessionFromContext(r.Context())
	returnTo := "/"
	var prevRecord domainauth.Session
	if prev != nil {
		prevRecord = *prev
		if prev.ReturnTo != "" {
			returnTo = safeRedirectPath(prev.ReturnTo)
		}
	}

	sess, err := h.Auth.EstablishSession(r.Context(), prevRecord, user)
	if err != nil {
		h.UI.ServerError(w, r, err)
		return
	}

	sess.AddFlash(domainauth.FlashInfo, flash)
	ReplaceSessionInContext(r.Context(), &sess)
	h.Cookies.Write(w, &sess)

	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

func (h *SessionHandlers) renderRegisterForm(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if err := h.T.RenderPage(w, status, data); err != nil {
		h.UI.ServerError(w, r, err)
	}
}

func (h *SessionHandlers) renderLogonForm(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if err := h.T.RenderPage(w, status, data); err != nil {
		h.UI.ServerError(w, r, err)
	}
}

func (h *SessionHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
