package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	text := sanitizeInput(r.Form.Get("text"))
	if _, err := s.snapshots.AddTask(r.Context(), text); err != nil {
		if errors.Is(err, core.ErrEmptyText) {
			// Empty input is a silent no-op; just re-render the list.
			s.renderTasks(w, r)
			return
		}
		slog.ErrorContext(r.Context(), "Task create failed", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao salvar tarefa")
		return
	}

	w.Header().Set("HX-Trigger", `{"task:created": {}}`)
	s.renderTasks(w, r)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if err := s.snapshots.ToggleTask(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Task toggle failed", "error", err, "id", id)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao atualizar tarefa")
		return
	}
	s.renderTasks(w, r)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if err := s.snapshots.RemoveTask(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Task delete failed", "error", err, "id", id)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao remover tarefa")
		return
	}
	s.renderTasks(w, r)
}

func (s *Server) handleTasksPartial(w http.ResponseWriter, r *http.Request) {
	s.renderTasks(w, r)
}

// renderTasks renders the task-list partial from the current snapshot.
func (s *Server) renderTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	snap, err := s.snapshots.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Snapshot load failed", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao carregar tarefas")
		return
	}

	data := struct {
		Tasks []taskView
	}{Tasks: taskViews(snap.Tasks)}

	if err := s.templates.ExecuteTemplate(w, "tasks.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Tasks template execution failed", "error", err, "template", "tasks.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
