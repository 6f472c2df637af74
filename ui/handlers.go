package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"modelbench/app"
	"modelbench/domain/account"
	"modelbench/domain/catalog"
	apperrors "modelbench/internal/errors"

	"github.com/go-chi/chi/v5"
)

// multipartOverhead allows for form fields and boundaries around the file.
const multipartOverhead = 1 << 20

// maxCredentialsBody bounds login and signup request bodies.
const maxCredentialsBody = 64 << 10

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"models":           catalog.All(),
		"network_defaults": catalog.DefaultNetworkConfig(),
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	upload, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	preview, err := s.services.Datasets.Preview(r.Context(), upload)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	upload, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	req := app.TrainRequest{
		Username:     r.FormValue("username"),
		Model:        chi.URLParam(r, "model"),
		TargetColumn: r.FormValue("target_column"),
		Upload:       upload,
	}
	if raw := r.FormValue("model_config"); raw != "" {
		var cfg catalog.NetworkConfig
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			s.respondError(w, r, apperrors.ValidationError("model_config is not valid JSON"))
			return
		}
		req.Network = &cfg
	}

	run, err := s.services.Training.Train(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	session, err := s.services.Accounts.Login(r.Context(), creds)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	session, err := s.services.Accounts.Signup(r.Context(), creds)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, r, apperrors.NotFound("route "+r.URL.Path))
}

// readCredentials decodes a {"username", "password"} JSON body
func readCredentials(w http.ResponseWriter, r *http.Request) (account.Credentials, error) {
	var creds account.Credentials
	r.Body = http.MaxBytesReader(w, r.Body, maxCredentialsBody)
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return creds, apperrors.ValidationError("body must be a JSON object with username and password")
	}
	return creds, nil
}

func (s *Server) handleComparisons(w http.ResponseWriter, r *http.Request) {
	cmp, err := s.services.History.Comparisons(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := s.services.History.Clear(r.Context(), username); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("All model history cleared for %s", username),
	})
}

// readUpload pulls the "dataset" file out of a multipart request
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (app.Upload, error) {
	if s.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize+multipartOverhead)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return app.Upload{}, apperrors.TooLarge(fmt.Sprintf("request exceeds %d bytes", tooLarge.Limit))
		}
		return app.Upload{}, apperrors.InvalidInput("request must be multipart/form-data")
	}

	file, header, err := r.FormFile("dataset")
	if err != nil {
		return app.Upload{}, apperrors.InvalidInput("dataset file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return app.Upload{}, apperrors.Wrapf(err, "read upload %q", header.Filename)
	}
	return app.Upload{FileName: header.Filename, Data: data}, nil
}
