package web

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	loanpredictor "github.com/aouyang1/go-loanpredictor"
	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 16

type pageData struct {
	Title       string
	About       template.HTML
	Explanation template.HTML
	Form        formState
	Results     *loanpredictor.Results
	Plot        string
	PlotWidth   string
	PlotHeight  string
	Error       string
}

func (s *Server) newPageData(in *loanpredictor.Input) *pageData {
	opt := s.predictor.Options()
	return &pageData{
		Title:       pageTitle,
		About:       s.about,
		Explanation: s.explanation,
		Form:        newFormState(s.vocab, s.opt, in),
		PlotWidth:   opt.PlotWidth,
		PlotHeight:  opt.PlotHeight,
	}
}

func (s *Server) render(w http.ResponseWriter, status int, data *pageData) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		slog.Error("error rendering page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("error writing page", "error", err)
	}
}

func (s *Server) homeViewHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, s.newPageData(nil))
}

func (s *Server) predictViewHandler(w http.ResponseWriter, r *http.Request) {
	in, err := parseForm(r, s.vocab, s.opt)
	if err != nil {
		slog.Debug("invalid form submission", "error", err)
		data := s.newPageData(nil)
		data.Error = err.Error()
		s.render(w, http.StatusBadRequest, data)
		return
	}

	res, err := s.predictor.Predict(in)
	if err != nil {
		slog.Error("error predicting loan amount", "error", err)
		data := s.newPageData(&in)
		data.Error = "unable to predict loan amount"
		s.render(w, http.StatusInternalServerError, data)
		return
	}

	plot, err := loanpredictor.AttributionHTML(res, s.predictor.Options())
	if err != nil {
		slog.Error("error rendering attribution plot", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := s.newPageData(&in)
	data.Results = res
	data.Plot = plot
	s.render(w, http.StatusOK, data)
}

func (s *Server) plotHandler(w http.ResponseWriter, r *http.Request) {
	in, err := parseForm(r, s.vocab, s.opt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.predictor.Predict(in)
	if err != nil {
		slog.Error("error predicting loan amount", "error", err)
		http.Error(w, "unable to predict loan amount", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loanpredictor.RenderAttribution(w, res, s.predictor.Options()); err != nil {
		slog.Error("error rendering attribution plot", "error", err)
	}
}

func (s *Server) vocabularyAPIHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.vocab)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) predictAPIHandler(w http.ResponseWriter, r *http.Request) {
	var in loanpredictor.Input
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := s.vocab.Validate(in, s.opt.Bounds()); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res, err := s.predictor.Predict(in)
	if err != nil {
		slog.Error("error predicting loan amount", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unable to predict loan amount"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("error writing response", "error", err)
	}
}
