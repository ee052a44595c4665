package api

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/youssefsiam38/adminui/auth"
	"github.com/youssefsiam38/adminui/callback"
	"github.com/youssefsiam38/adminui/hooks"
	"github.com/youssefsiam38/adminui/page"
	"github.com/youssefsiam38/adminui/static"
	"github.com/youssefsiam38/adminui/upload"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// Page handlers

func (rt *router) handlePageLayout(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "*")
	id := auth.FromContext(r.Context())

	m, ok := rt.config.Pages.Resolve(raw)
	if !ok {
		rt.writeError(w, http.StatusOK, TitleNotFound, MessageDefault, TypeNotFound)
		return
	}
	if !m.Page.Authorized(id.Tags()) {
		rt.writeError(w, http.StatusOK, TitleNoPermission, MessageNoPermission, TypeForbidden)
		return
	}
	if err := rt.config.Hooks.TriggerBeforePage(r.Context(), m.Page.Path, id); err != nil {
		if errors.Is(err, hooks.ErrDenied) {
			rt.writeError(w, http.StatusOK, TitleNoPermission, MessageNoPermission, TypeForbidden)
			return
		}
		rt.logger.Error("before page hook failed", "page", m.Page.Path, "error", err)
		rt.writeServerError(w)
		return
	}

	els, err := m.Page.Build(r.Context(), &page.Request{
		SubPath:    m.SubPath,
		HasSubPath: m.HasSubPath,
		Query:      r.URL.Query(),
		Identity:   id,
	})
	if err != nil {
		rt.logger.Error("page build failed",
			"page", m.Page.Path,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		rt.writeServerError(w)
		return
	}

	doc, err := rt.enc.EncodeElements(els)
	if err != nil {
		rt.logger.Error("page encode failed", "page", m.Page.Path, "error", err)
		rt.writeServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Menu and settings handlers

func (rt *router) handleMainMenu(w http.ResponseWriter, r *http.Request) {
	tags := auth.FromContext(r.Context()).Tags()
	writeJSON(w, http.StatusOK, map[string]any{"menu": rt.menu.For(tags)})
}

func (rt *router) handleAppSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.config.Settings)
}

// Upload handler

func (rt *router) handleUpload(w http.ResponseWriter, r *http.Request) {
	store := rt.config.Uploads
	if store == nil {
		rt.writeError(w, http.StatusOK, TitleUploadDisabled, MessageDefault, TypeNotImplemented)
		return
	}
	if limit := store.MaxSize(); limit > 0 {
		// Leave room for the multipart envelope; the store enforces the file limit.
		r.Body = http.MaxBytesReader(w, r.Body, limit+maxBodySize)
	}

	if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			rt.writeError(w, http.StatusOK, TitleBadRequest, "Uploaded file is too large", TypeTooLarge)
			return
		}
		rt.writeError(w, http.StatusOK, TitleBadRequest, "Expected a multipart form", TypeBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["upload"]
	if len(files) == 0 {
		rt.writeError(w, http.StatusOK, TitleBadRequest, `Missing form field "upload"`, TypeBadRequest)
		return
	}

	name, err := store.Save(files[0])
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		rt.writeError(w, http.StatusOK, TitleBadRequest, "Uploaded file is too large", TypeTooLarge)
		return
	case errors.Is(err, upload.ErrInvalidName):
		rt.writeError(w, http.StatusOK, TitleBadRequest, "Invalid file name", TypeBadRequest)
		return
	case err != nil:
		rt.logger.Error("upload failed", "file", files[0].Filename, "error", err)
		rt.writeServerError(w)
		return
	}

	rt.logger.Info("file uploaded", "file", name, "size", files[0].Size)
	writeJSON(w, http.StatusOK, name)
}

// Login handler

func (rt *router) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		rt.writeError(w, http.StatusOK, TitleBadRequest, "Could not read request body", TypeBadRequest)
		return
	}

	var creds auth.Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		rt.writeError(w, http.StatusOK, TitleBadRequest, "Invalid login request", TypeBadRequest)
		return
	}
	creds.Raw = body
	if creds.Method == "" {
		creds.Method = auth.MethodPassword
	}

	login, ok := rt.logins.Lookup(creds.Method)
	if !ok {
		rt.metrics.login(unknownMethod, "unsupported")
		rt.writeError(w, http.StatusOK, TitleLoginType, MessageDefault, TypeNotImplemented)
		return
	}

	outcome, err := login(r.Context(), creds)
	if err != nil {
		rt.metrics.login(creds.Method, "error")
		rt.logger.Error("login handler failed", "method", creds.Method, "error", err)
		rt.writeServerError(w)
		return
	}

	el, err := auth.OutcomeElement(rt.config.Signer, outcome)
	if err != nil {
		rt.metrics.login(creds.Method, "error")
		rt.logger.Error("login outcome failed", "method", creds.Method, "error", err)
		rt.writeServerError(w)
		return
	}

	succeeded := el.Type() != "LoginFailed"
	if succeeded {
		rt.metrics.login(creds.Method, "ok")
	} else {
		rt.metrics.login(creds.Method, "failed")
	}
	if err := rt.config.Hooks.TriggerLogin(r.Context(), creds.Method, creds.Username, succeeded); err != nil {
		rt.logger.Warn("login hook failed", "method", creds.Method, "error", err)
	}
	rt.writeElement(w, http.StatusOK, el)
}

// Page action handler

type pageActionRequest struct {
	CallbackID string            `json:"cb_uuid"`
	Args       []json.RawMessage `json:"args"`
}

func (rt *router) handlePageAction(w http.ResponseWriter, r *http.Request) {
	var req pageActionRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(&req); err != nil {
		rt.writeError(w, http.StatusOK, TitleBadRequest, "Invalid page action request", TypeBadRequest)
		return
	}

	result, found, err := rt.config.Callbacks.Invoke(r.Context(), req.CallbackID, req.Args)
	if found {
		name := ""
		if cb, ok := rt.config.Callbacks.Lookup(req.CallbackID); ok {
			name = cb.Name()
		}
		if hookErr := rt.config.Hooks.TriggerAction(r.Context(), req.CallbackID, name, err); hookErr != nil {
			rt.logger.Warn("action hook failed", "cb_uuid", req.CallbackID, "error", hookErr)
		}
	}
	switch {
	case !found:
		rt.metrics.invocation(outcomeAbsent)
		rt.logger.Debug("unknown callback", "cb_uuid", req.CallbackID)
		rt.writeError(w, http.StatusOK, TitleNoAction, MessageDefault, TypeNoAction)
		return
	case errors.Is(err, callback.ErrMissingArguments), errors.Is(err, callback.ErrInvalidArgument):
		rt.metrics.invocation(outcomeError)
		rt.writeError(w, http.StatusOK, TitleBadRequest, err.Error(), TypeBadRequest)
		return
	case err != nil:
		rt.metrics.invocation(outcomeError)
		rt.logger.Error("callback failed",
			"cb_uuid", req.CallbackID,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		rt.writeServerError(w)
		return
	case result == nil:
		rt.metrics.invocation(outcomeEmpty)
		rt.writeError(w, http.StatusOK, TitleNoAction, MessageDefault, TypeNoAction)
		return
	}

	doc, err := rt.enc.EncodeResult(result)
	if err != nil {
		rt.metrics.invocation(outcomeError)
		rt.logger.Error("callback result encode failed", "cb_uuid", req.CallbackID, "error", err)
		rt.writeServerError(w)
		return
	}
	rt.metrics.invocation(outcomeOK)
	writeJSON(w, http.StatusOK, doc)
}

// Static handlers

func (rt *router) handleFavicon(w http.ResponseWriter, r *http.Request) {
	if rt.config.Favicon != "" {
		http.ServeFile(w, r, rt.config.Favicon)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(static.Favicon())
}

// handleFrontend serves files of the SPA build and falls back to its
// index.html for every other path, letting the frontend router take over.
func (rt *router) handleFrontend(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name != "" && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		if info, err := fs.Stat(rt.config.Frontend, name); err == nil && !info.IsDir() {
			w.Header().Del("Content-Type")
			http.ServeFileFS(w, r, rt.config.Frontend, name)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rt.index)
}
