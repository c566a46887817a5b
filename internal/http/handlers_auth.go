package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/LorenzoOliveira534/youpagev1/internal/auth"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	email := sanitizeInput(r.Form.Get("email"))
	password := r.Form.Get("password")

	flowToken, err := s.auth.Register(r.Context(), name, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrMissingFields) {
			writeErrorFragment(w, http.StatusUnprocessableEntity, "Preencha todos os campos")
			return
		}
		slog.ErrorContext(r.Context(), "Register failed", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao registrar")
		return
	}

	// The verify form replaces the register form in place.
	data := struct {
		FlowToken string
		Error     string
	}{FlowToken: flowToken}
	if err := s.templates.ExecuteTemplate(w, "verify.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Verify template execution failed", "error", err, "template", "verify.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	flowToken := strings.TrimSpace(r.Form.Get("flow"))
	// The four cells arrive as separate fields; join the digits.
	code := strings.TrimSpace(r.Form.Get("d1")) +
		strings.TrimSpace(r.Form.Get("d2")) +
		strings.TrimSpace(r.Form.Get("d3")) +
		strings.TrimSpace(r.Form.Get("d4"))

	session, err := s.auth.Verify(r.Context(), flowToken, code)
	switch {
	case errors.Is(err, auth.ErrCodeMismatch):
		// Stay in the verify state with a retry message.
		w.WriteHeader(http.StatusUnprocessableEntity)
		data := struct {
			FlowToken string
			Error     string
		}{FlowToken: flowToken, Error: "Código incorreto. Tente novamente."}
		if terr := s.templates.ExecuteTemplate(w, "verify.html", data); terr != nil {
			slog.ErrorContext(r.Context(), "Verify template execution failed", "error", terr, "template", "verify.html")
		}
		return
	case errors.Is(err, auth.ErrUnknownFlow):
		writeErrorFragment(w, http.StatusUnprocessableEntity, "Sessão de verificação expirada. Registre-se novamente.")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Verify failed", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao verificar código")
		return
	}

	s.setSessionCookie(w, session)
	s.redirectToDashboard(w, r)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	email := sanitizeInput(r.Form.Get("email"))
	password := r.Form.Get("password")

	session, err := s.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrMissingFields) {
			writeErrorFragment(w, http.StatusUnprocessableEntity, "Preencha e-mail e senha")
			return
		}
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao entrar")
		return
	}

	s.setSessionCookie(w, session)
	s.redirectToDashboard(w, r)
}

func (s *Server) handleSocial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, err := s.auth.Social(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Social login failed", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao entrar")
		return
	}

	s.setSessionCookie(w, session)
	s.redirectToDashboard(w, r)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := s.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		slog.ErrorContext(r.Context(), "Logout failed", "error", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/auth")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// redirectToDashboard handles both HTMX and plain form submissions.
func (s *Server) redirectToDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/dashboard")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="success">Bem-vindo!</div>`))
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
