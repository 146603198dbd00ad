package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/pharmadmin/internal/common"
	"github.com/dmitrijs2005/pharmadmin/internal/devapi/auth"
	"github.com/dmitrijs2005/pharmadmin/internal/devapi/blob"
	"github.com/dmitrijs2005/pharmadmin/internal/devapi/store"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
)

// DefaultMaxUpload caps the size of one uploaded asset.
const DefaultMaxUpload = 5 << 20

const maxJSONBody = 1 << 20

// Handler serves the API over a store and a blob backend.
type Handler struct {
	store     *store.Memory
	blobs     blob.Store
	secret    []byte
	validity  time.Duration
	maxUpload int64
	logger    logging.Logger
}

func NewHandler(s *store.Memory, b blob.Store, secretKey string, validity time.Duration, l logging.Logger) *Handler {
	return &Handler{
		store:     s,
		blobs:     b,
		secret:    []byte(secretKey),
		validity:  validity,
		maxUpload: DefaultMaxUpload,
		logger:    l.With("module", "http_api"),
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if writeStoreError(w, err) {
		h.logger.Error(r.Context(), "store error", "path", r.URL.Path, "error", err)
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	acc, err := h.store.AccountByEmail(r.Context(), req.Email)
	if err != nil || !acc.Credential.Matches([]byte(req.Password)) {
		h.logger.Warn(r.Context(), "failed sign-in", "email", req.Email)
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(acc.ID, acc.Role, h.secret, h.validity)
	if err != nil {
		h.logger.Error(r.Context(), "token error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info(r.Context(), "signed in", "email", acc.Email)
	writeData(w, http.StatusOK, map[string]any{"token": token, "user": acc.Identity()})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	acc, err := h.store.Account(r.Context(), claims.UserID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, account not found")
		return
	}
	writeData(w, http.StatusOK, acc.Identity())
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.store.Stats(r.Context()))
}

// parseQuery splits the query string into paging, sorting and filters.
func parseQuery(r *http.Request) store.Query {
	q := store.Query{Filters: map[string]string{}}
	for k, vs := range r.URL.Query() {
		v := vs[0]
		switch k {
		case "page":
			q.Page, _ = strconv.Atoi(v)
		case "limit":
			q.Limit, _ = strconv.Atoi(v)
		case "sortBy":
			q.SortBy = v
		case "sortOrder":
			q.SortOrder = v
		default:
			q.Filters[k] = v
		}
	}
	return q
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.List(r.Context(), chi.URLParam(r, "collection"), parseQuery(r))
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success:    true,
		Data:       p.Items,
		Pagination: &pagination{Page: p.Page, Limit: p.Limit, Total: p.Total, Pages: p.Pages},
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body store.Record
	if !decodeBody(w, r, &body) {
		return
	}
	rec, err := h.store.Create(r.Context(), chi.URLParam(r, "collection"), body)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, rec)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var body store.Record
	if !decodeBody(w, r, &body) {
		return
	}
	rec, err := h.store.Update(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"), body)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Deleted"})
}

// upload accepts one image in the multipart "file" part.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<10)
	file, header, err := r.FormFile(common.UploadFieldName)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Upload could not be read")
		return
	}
	if int64(len(data)) > h.maxUpload {
		writeMessage(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	ctype := mime.TypeByExtension(strings.ToLower(path.Ext(header.Filename)))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	if !strings.HasPrefix(ctype, "image/") {
		writeMessage(w, http.StatusBadRequest, "Only image uploads are allowed")
		return
	}

	key := blob.NewKey(header.Filename)
	url, err := h.blobs.Put(r.Context(), key, ctype, data)
	if err != nil {
		h.logger.Error(r.Context(), "upload failed", "key", key, "error", err)
		writeMessage(w, http.StatusBadGateway, "Upload storage unavailable")
		return
	}

	h.logger.Info(r.Context(), "asset stored", "key", key, "bytes", len(data))
	writeData(w, http.StatusCreated, map[string]string{"url": url, "key": key})
}
