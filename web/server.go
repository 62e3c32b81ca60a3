// Package web serves the interactive prediction form, the attribution plot and a small JSON
// API on top of a loaded predictor.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	loanpredictor "github.com/aouyang1/go-loanpredictor"
)

const pageTitle = "Prediction using Supervised Machine Learning"

var (
	//go:embed templates/*
	embedFS embed.FS

	ErrNoPredictor = errors.New("no predictor")
)

// Server renders the form and answers predictions. It only reads the predictor, so a single
// server is shared by every request.
type Server struct {
	predictor *loanpredictor.Predictor
	opt       *Options
	vocab     loanpredictor.Vocabulary
	tmpl      *template.Template

	about       template.HTML
	explanation template.HTML
}

// New creates a server for the predictor. If no options are provided a default is used.
func New(p *loanpredictor.Predictor, opt *Options) (*Server, error) {
	if p == nil {
		return nil, ErrNoPredictor
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}

	tmpl, err := template.New("").ParseFS(embedFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		predictor:   p,
		opt:         opt,
		vocab:       p.Vocabulary(),
		tmpl:        tmpl,
		about:       renderMarkdown(aboutMarkdown),
		explanation: renderMarkdown(explanationMarkdown),
	}, nil
}

// Routes returns the request multiplexer of every page and api endpoint
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Views
	mux.HandleFunc("GET /{$}", s.homeViewHandler)
	mux.HandleFunc("POST /{$}", s.predictViewHandler)
	mux.HandleFunc("POST /plot", s.plotHandler)

	// Data API
	mux.HandleFunc("GET /api/vocabulary", s.vocabularyAPIHandler)
	mux.HandleFunc("POST /api/predict", s.predictAPIHandler)

	return mux
}
