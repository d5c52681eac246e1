package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"disc-quiz-service/internal/app"
	"disc-quiz-service/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// FormHandler serves the quiz as a plain HTML form: one page per session that
// shows the questions while collecting and the results once submitted.
type FormHandler struct {
	service         *app.QuizService
	questionnaireID string
	percent         percentFormatter
	logger          *zap.Logger
}

func NewFormHandler(service *app.QuizService, questionnaireID string, logger *zap.Logger) *FormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormHandler{
		service:         service,
		questionnaireID: questionnaireID,
		percent:         newPercentFormatter(language.BrazilianPortuguese),
		logger:          logger,
	}
}

// Register mounts the form routes on mux.
func (h *FormHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Start)
	mux.HandleFunc("GET /sessions/{id}", h.Show)
	mux.HandleFunc("POST /sessions/{id}", h.Answer)
}

type pageView struct {
	Title      string
	SessionID  string
	Questions  []questionView
	Submitted  bool
	Rows       []resultRow
	Chart      barChart
	AccessCode string
	Error      string
}

type questionView struct {
	ID      string
	Prompt  string
	Options []optionView
}

type optionView struct {
	ID      string
	Label   string
	Checked bool
}

type resultRow struct {
	Category string
	Percent  string
}

// Start opens a fresh session and redirects to its page.
func (h *FormHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, _, err := h.service.Start(r.Context(), h.questionnaireID)
	if err != nil {
		h.logger.Error("start session failed", zap.String("questionnaire_id", h.questionnaireID), zap.Error(err))
		http.Error(w, "não foi possível iniciar o teste", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, sessionPath(session.ID), http.StatusSeeOther)
}

// Show renders the form or, after submission, the results.
func (h *FormHandler) Show(w http.ResponseWriter, r *http.Request) {
	session, questionnaire, err := h.service.Session(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.render(w, http.StatusOK, h.view(session, questionnaire, ""))
}

// Answer stores the posted selections and submits when action=submit.
func (h *FormHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	session, questionnaire, err := h.service.Session(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if session.Submitted() {
		http.Redirect(w, r, sessionPath(sessionID), http.StatusSeeOther)
		return
	}

	for _, question := range questionnaire.Questions {
		optionID := r.PostForm.Get(question.ID)
		if optionID == "" || session.Answers[question.ID] == optionID {
			continue
		}
		if session, err = h.service.Select(r.Context(), sessionID, question.ID, optionID); err != nil {
			h.writeError(w, err)
			return
		}
	}

	if r.PostForm.Get("action") == "submit" {
		if _, err := h.service.Submit(r.Context(), sessionID); err != nil && !errors.Is(err, domain.ErrAlreadySubmitted) {
			if errors.Is(err, domain.ErrSessionNotFound) {
				h.writeError(w, err)
				return
			}
			h.render(w, http.StatusInternalServerError,
				h.view(session, questionnaire, "não foi possível enviar as respostas, tente novamente"))
			return
		}
	}
	http.Redirect(w, r, sessionPath(sessionID), http.StatusSeeOther)
}

func (h *FormHandler) view(session *app.Session, questionnaire domain.Questionnaire, errMsg string) pageView {
	view := pageView{
		Title:     questionnaire.Title,
		SessionID: session.ID,
		Error:     errMsg,
	}
	if session.Submitted() && session.Submission != nil {
		dist := session.Submission.Result.Distribution
		view.Submitted = true
		view.AccessCode = session.Submission.Result.Code
		view.Chart = newBarChart(dist, h.percent.Format)
		for _, entry := range dist.Entries() {
			view.Rows = append(view.Rows, resultRow{
				Category: string(entry.Category),
				Percent:  h.percent.Format(entry.Percent),
			})
		}
		return view
	}

	for _, question := range questionnaire.Questions {
		qv := questionView{ID: question.ID, Prompt: question.Prompt}
		for _, opt := range question.Options {
			qv.Options = append(qv.Options, optionView{
				ID:      opt.ID,
				Label:   opt.Label,
				Checked: session.Answers[question.ID] == opt.ID,
			})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}

func (h *FormHandler) render(w http.ResponseWriter, status int, view pageView) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		h.logger.Error("render page failed", zap.String("session_id", view.SessionID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *FormHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, "sessão não encontrada", http.StatusNotFound)
	case errors.Is(err, domain.ErrQuestionNotFound), errors.Is(err, domain.ErrOptionNotFound):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrAlreadySubmitted), errors.Is(err, domain.ErrSubmitPending):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("form request failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func sessionPath(sessionID string) string {
	return "/sessions/" + sessionID
}
