package api

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/domain/history"
	"github.com/prasetyowira/qrstudio/domain/payload"
	"github.com/prasetyowira/qrstudio/infrastructure/cache"
	appLogger "github.com/prasetyowira/qrstudio/infrastructure/logger"
)

// Renderer produces a styled PNG for an encoded payload.
type Renderer interface {
	Render(data string, style history.Style) ([]byte, error)
}

// Thumbnailer produces a plain preview PNG for an encoded payload.
type Thumbnailer interface {
	Thumbnail(value string) ([]byte, error)
}

// Handler contains the HTTP handlers for the QR API
type Handler struct {
	history   *history.Service
	renderer  Renderer
	thumbs    Thumbnailer
	cache     *cache.NamespaceLRU
	uploadDir string
}

// NewHandler creates a new API handler
func NewHandler(historySvc *history.Service, renderer Renderer, thumbs Thumbnailer, imageCache *cache.NamespaceLRU, uploadDir string) *Handler {
	return &Handler{
		history:   historySvc,
		renderer:  renderer,
		thumbs:    thumbs,
		cache:     imageCache,
		uploadDir: uploadDir,
	}
}

// EncodeRequest is the request body for encoding a payload
type EncodeRequest struct {
	Type   string         `json:"type"`
	Fields payload.Fields `json:"fields"`
}

// EncodeResponse carries the serialized QR text for a payload
type EncodeResponse struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	Content string `json:"content"`
}

// RenderRequest is the request body for rendering a styled QR image
type RenderRequest struct {
	Type   string         `json:"type"`
	Fields payload.Fields `json:"fields"`
	Style  history.Style  `json:"style"`
}

// AddHistoryRequest is the request body for recording a generated payload
type AddHistoryRequest struct {
	Type          string         `json:"type"`
	Value         string         `json:"value"`
	Content       string         `json:"content,omitempty"`
	HTMLCode      string         `json:"htmlCode,omitempty"`
	Customization *history.Style `json:"customization,omitempty"`
}

// RecreateResponse returns a history entry with its value decoded back into
// editable fields
type RecreateResponse struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Value         string         `json:"value"`
	Fields        payload.Fields `json:"fields"`
	Customization *history.Style `json:"customization,omitempty"`
}

// UploadLogoResponse returns the stored filename of an uploaded logo
type UploadLogoResponse struct {
	Filename string `json:"filename"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// EncodeQR handles POST /api/qr/encode
func (h *Handler) EncodeQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		appLogger.CtxWarn(ctx, "Invalid encode request body", appLogger.LoggerInfo{
			ContextFunction: constant.CtxEncodeQR,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payloadType := payload.Type(req.Type)
	if err := payload.Validate(payloadType, req.Fields); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	value := payload.Encode(payloadType, req.Fields)

	appLogger.CtxDebug(ctx, "Payload encoded", appLogger.LoggerInfo{
		ContextFunction: constant.CtxEncodeQR,
		Data: map[string]interface{}{
			constant.DataType: req.Type,
			constant.DataSize: len(value),
		},
	})

	WriteJSON(w, EncodeResponse{
		Type:    req.Type,
		Value:   value,
		Content: payload.Label(payloadType, req.Fields),
	}, http.StatusOK)
}

// RenderQR handles POST /api/qr/render
func (h *Handler) RenderQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payloadType := payload.Type(req.Type)
	if err := payload.Validate(payloadType, req.Fields); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	value := payload.Encode(payloadType, req.Fields)
	cacheKey := renderCacheKey(value, req.Style)

	if cached, found := h.cache.Get(constant.RenderNamespace, cacheKey); found {
		writePNG(w, cached.([]byte))
		return
	}

	png, err := h.renderer.Render(value, req.Style)
	if err != nil {
		appLogger.CtxError(ctx, "Failed to render QR image", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRenderQR,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeRenderEncode,
				Message: err.Error(),
				Type:    constant.ErrTypeRender,
			},
			Data: map[string]interface{}{
				constant.DataType: req.Type,
			},
		})
		WriteJSONError(w, "Failed to render QR image", http.StatusInternalServerError)
		return
	}

	h.cache.Set(constant.RenderNamespace, cacheKey, png)
	writePNG(w, png)
}

// ListHistory handles GET /api/history
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries := h.history.List(r.Context())
	WriteJSON(w, entries, http.StatusOK)
}

// AddHistory handles POST /api/history
func (h *Handler) AddHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Value == "" {
		WriteJSONError(w, constant.ErrEmptyValue, http.StatusBadRequest)
		return
	}

	entry := h.history.Add(ctx, history.Entry{
		Type:          payload.Type(req.Type),
		Value:         req.Value,
		Content:       req.Content,
		HTMLCode:      req.HTMLCode,
		Customization: req.Customization,
	})

	WriteJSON(w, entry, http.StatusCreated)
}

// RemoveHistory handles DELETE /api/history/{entryID}
func (h *Handler) RemoveHistory(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")

	h.history.Remove(r.Context(), entryID)
	h.cache.Invalidate(constant.ThumbnailNamespace, entryID)

	w.WriteHeader(http.StatusNoContent)
}

// ClearHistory handles DELETE /api/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.history.Clear(r.Context())
	h.cache.InvalidateNamespace(constant.ThumbnailNamespace)

	w.WriteHeader(http.StatusNoContent)
}

// RecreateHistory handles GET /api/history/{entryID}/recreate. It decodes the
// stored value back into structured fields so the entry can be edited again.
func (h *Handler) RecreateHistory(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")

	entry, found := h.history.Get(r.Context(), entryID)
	if !found {
		WriteJSONError(w, constant.ErrEntryNotFound, http.StatusNotFound)
		return
	}

	WriteJSON(w, RecreateResponse{
		ID:            entry.ID,
		Type:          string(entry.Type),
		Value:         entry.Value,
		Fields:        payload.Decode(entry.Type, entry.Value),
		Customization: entry.Customization,
	}, http.StatusOK)
}

// HistoryThumbnail handles GET /api/history/{entryID}/thumbnail
func (h *Handler) HistoryThumbnail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryID := chi.URLParam(r, "entryID")

	entry, found := h.history.Get(ctx, entryID)
	if !found {
		WriteJSONError(w, constant.ErrEntryNotFound, http.StatusNotFound)
		return
	}

	if cached, ok := h.cache.Get(constant.ThumbnailNamespace, entryID); ok {
		writePNG(w, cached.([]byte))
		return
	}

	png, err := h.thumbs.Thumbnail(entry.Value)
	if err != nil {
		appLogger.CtxError(ctx, "Failed to generate thumbnail", appLogger.LoggerInfo{
			ContextFunction: constant.CtxHistoryThumbnail,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeThumbnail,
				Message: err.Error(),
				Type:    constant.ErrTypeRender,
			},
			Data: map[string]interface{}{
				constant.DataEntryID: entryID,
			},
		})
		WriteJSONError(w, "Failed to generate thumbnail", http.StatusInternalServerError)
		return
	}

	h.cache.Set(constant.ThumbnailNamespace, entryID, png)
	writePNG(w, png)
}

// HistoryEvents handles GET /api/history/events. It streams history change
// notifications as server-sent events until the client disconnects.
func (h *Handler) HistoryEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, cancel := h.history.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: ready\ndata: %s\n\n", constant.HistoryStorageKey)
	flusher.Flush()

	appLogger.CtxDebug(ctx, "History event stream opened", appLogger.LoggerInfo{
		ContextFunction: constant.CtxHistoryEvents,
	})

	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", ev.Key)
			flusher.Flush()
		}
	}
}

// UploadLogo handles POST /api/logo. Only PNG files are accepted; the stored
// filename is returned for use in a style's logoUrl.
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		WriteJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		WriteJSONError(w, "Missing logo file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	if http.DetectContentType(head[:n]) != "image/png" {
		WriteJSONError(w, "Logo must be a PNG image", http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		WriteJSONError(w, "Failed to store logo", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("logo_%d.png", time.Now().UnixNano())
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		WriteJSONError(w, "Failed to store logo", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := dst.Write(head[:n]); err == nil {
		_, err = io.Copy(dst, file)
	}
	if err != nil {
		appLogger.CtxError(ctx, "Failed to write uploaded logo", appLogger.LoggerInfo{
			ContextFunction: constant.CtxUploadLogo,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIUpload,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataFilename: filename,
			},
		})
		WriteJSONError(w, "Failed to store logo", http.StatusInternalServerError)
		return
	}

	appLogger.CtxInfo(ctx, "Logo uploaded", appLogger.LoggerInfo{
		ContextFunction: constant.CtxUploadLogo,
		Data: map[string]interface{}{
			constant.DataFilename: filename,
			constant.DataSize:     header.Size,
		},
	})

	WriteJSON(w, UploadLogoResponse{Filename: filename}, http.StatusCreated)
}

// renderCacheKey derives a stable cache key from the encoded value and the
// full style snapshot.
func renderCacheKey(value string, style history.Style) string {
	styleJSON, _ := json.Marshal(style)
	sum := sha256.Sum256(append([]byte(value+"|"), styleJSON...))
	return fmt.Sprintf("%x", sum)
}

// writePNG writes image bytes with the PNG content type.
func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		appLogger.Error("Failed to encode JSON response", appLogger.LoggerInfo{
			ContextFunction: constant.CtxAPI,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, status int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  status,
	}, status)
}
