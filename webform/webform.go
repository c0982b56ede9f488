// Package webform serves the survey form, its confirmation page and the
// list of previous responses as server-rendered HTML. All data goes through
// the survey API.
package webform

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/care-survey/form"
	"github.com/mbolis/care-survey/log"
	"github.com/mbolis/care-survey/model"
)

const submitFailed = "Failed to submit survey. Please try again."

//go:embed templates
var templateFS embed.FS

// API is the part of the survey API the form needs; *client.Client
// implements it.
type API interface {
	Create(ctx context.Context, s model.Submission) (int64, error)
	List(ctx context.Context) ([]model.Response, error)
}

type Handler struct {
	api  API
	tmpl *template.Template

	mu        sync.Mutex
	responses []model.Response
}

func New(api API) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{api: api, tmpl: tmpl}, nil
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, log.RequestLogger(), middleware.Recoverer)

	r.Get("/", h.ShowForm)
	r.Post("/", h.Submit)
	r.Get("/responses", h.ShowResponses)

	return r
}

type section struct {
	Title  string
	Fields []form.Field
}

type formPage struct {
	Sections []section
	Values   map[string]string
	Errors   form.Errors
	Error    string
}

func newFormPage(rec *form.Record) formPage {
	page := formPage{Values: rec.Values()}
	for _, title := range form.Sections {
		page.Sections = append(page.Sections, section{title, form.InSection(title)})
	}
	return page
}

// ShowForm renders an empty form.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "form", newFormPage(&form.Record{}))
}

// Submit validates the posted form and, when it passes, sends it to the API.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		log.Debugf("form.parse: %s", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	rec := form.Record{}
	for _, f := range form.Fields {
		rec.Set(f.Name, r.PostForm.Get(f.Name))
	}

	if errs := rec.Validate(); errs != nil {
		log.Debugf("form.validate: %s", errs)
		page := newFormPage(&rec)
		page.Errors = errs
		h.render(w, http.StatusUnprocessableEntity, "form", page)
		return
	}

	submission := rec.Submission()
	id, err := h.api.Create(r.Context(), submission)
	if err != nil {
		log.Errorf("api.create_response: %s", err)
		page := newFormPage(&rec)
		page.Error = submitFailed
		h.render(w, http.StatusBadGateway, "form", page)
		return
	}

	h.refresh(r.Context())

	h.render(w, http.StatusOK, "confirmation", confirmationPage{
		ID:   id,
		Rows: submissionRows(submission),
	})
}

type confirmationPage struct {
	ID   int64
	Rows []row
}

type responsesPage struct {
	Responses []responseView
	// Stale is set when the API could not be reached and the last
	// fetched list is shown instead.
	Stale bool
}

type responseView struct {
	ID        int64
	Rows      []row
	Submitted string
	Ago       string
}

// ShowResponses renders every stored response.
func (h *Handler) ShowResponses(w http.ResponseWriter, r *http.Request) {
	page := responsesPage{}

	responses, err := h.refresh(r.Context())
	if err != nil {
		page.Stale = true
	}

	now := time.Now()
	for _, resp := range responses {
		view := responseView{ID: resp.ID, Rows: responseRows(resp)}
		if !resp.CreatedAt.IsZero() {
			view.Submitted = resp.CreatedAt.Local().Format("Jan 2, 2006, 3:04:05 PM")
			view.Ago = humanize.RelTime(resp.CreatedAt, now, "ago", "from now")
		}
		page.Responses = append(page.Responses, view)
	}

	h.render(w, http.StatusOK, "responses", page)
}

// Cached returns the last list of responses fetched from the API.
func (h *Handler) Cached() []model.Response {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.responses
}

// refresh fetches the responses and caches them. On failure it logs and
// returns the cached list with the error.
func (h *Handler) refresh(ctx context.Context) ([]model.Response, error) {
	responses, err := h.api.List(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		log.Errorf("api.list_responses: %s", err)
		return h.responses, err
	}
	h.responses = responses
	return responses, nil
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	// render fully before writing, so a template error can still become a 500
	var buf bytes.Buffer
	err := h.tmpl.ExecuteTemplate(&buf, name, data)
	if err != nil {
		log.Errorf("template.%s: %s", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
