package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"sukaikan/internal/logger"
	"sukaikan/internal/storage"
	"sukaikan/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxChatBody = 16 << 10

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

func (h *Handler) aiChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	// A missing or malformed body is treated as an empty question.
	_ = json.NewDecoder(io.LimitReader(r.Body, maxChatBody)).Decode(&req)

	utils.WriteJSON(w, http.StatusOK, chatResponse{
		Answer: h.Assistant.Answer(r.Context(), req.Question),
	})
}

func (h *Handler) serveUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")

	f, err := h.Files.Open(name)
	if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidName) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to open upload", zap.String("name", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := io.Copy(w, f); err != nil {
		logger.FromCtx(r.Context()).Warn("failed to send upload", zap.String("name", name), zap.Error(err))
	}
}
