package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"quiz-widget/internal/domain"
)

// QuestionRepository lists the question bank served to clients.
type QuestionRepository interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
}

// QuestionsHandler serves GET /api/questions.
type QuestionsHandler struct {
	questions QuestionRepository
}

func NewQuestionsHandler(questions QuestionRepository) *QuestionsHandler {
	return &QuestionsHandler{questions: questions}
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeHTTP writes the question bank as a JSON array in wire format.
func (h *QuestionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.ListQuestions(r.Context())
	if err != nil {
		log.Printf("list questions: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorPayload{Message: "failed to load questions"})
		return
	}
	writeJSON(w, http.StatusOK, toWire(questions))
}

// RouterOptions configures the HTTP surface.
type RouterOptions struct {
	AllowedOrigins []string
}

// NewRouter mounts the question endpoint and health checks.
func NewRouter(questions QuestionRepository, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/api/questions", NewQuestionsHandler(questions))
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
