// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package render provides the HTML response engine used by all web handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses. Every
// page is executed against the shared base layout, enriched with the
// cross-request state handlers never wire by hand (identity, flash messages,
// the CSRF form token), and written only after the visitor's session has been
// persisted, so Set-Cookie headers always precede the body.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/taibuivan/inkstone/internal/platform/apperr"
	"github.com/taibuivan/inkstone/internal/platform/ctxutil"
	"github.com/taibuivan/inkstone/internal/platform/session"
)

// errorPage is the template rendered by [Engine.Error].
const errorPage = "error.html"

// Data carries page-specific template values. The engine reserves the
// "Identity", "Flashes" and "CSRFToken" keys.
type Data map[string]any

// Engine renders HTML pages from a parsed template set.
//
// Each page owns a clone of the base layout, mirroring template inheritance:
// pages define the "title" and "content" blocks that base.html places.
type Engine struct {
	pages    map[string]*template.Template
	sessions *session.Manager
}

// funcMap exposes the few helpers templates need.
var funcMap = template.FuncMap{
	"formatDate": func(t time.Time) string { return t.Format("2006-01-02") },
}

// NewEngine parses every page under templates/ against the base layout.
//
// # Parameters
//   - fsys: Filesystem holding templates/base.html and the page files.
//   - sessions: Manager used to persist session state before each response.
func NewEngine(fsys fs.FS, sessions *session.Manager) (*Engine, error) {
	pages := make(map[string]*template.Template)

	walkErr := fs.WalkDir(fsys, "templates", func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(filePath, ".html") {
			return nil
		}

		name := strings.TrimPrefix(filePath, "templates/")
		if name == "base.html" {
			return nil
		}

		parsed, err := template.New(path.Base(filePath)).
			Funcs(funcMap).
			ParseFS(fsys, "templates/base.html", filePath)
		if err != nil {
			return fmt.Errorf("render: failed to parse %s: %w", name, err)
		}

		pages[name] = parsed
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if _, ok := pages[errorPage]; !ok {
		return nil, fmt.Errorf("render: required template %s is missing", errorPage)
	}

	return &Engine{pages: pages, sessions: sessions}, nil
}

// Render writes an HTML page.
//
// # Flow
//  1. Populate the reserved keys: identity, pending flash messages, and the
//     session's CSRF token (minted on first use).
//  2. Execute the page into a buffer so template failures can still become
//     clean error responses.
//  3. Persist the session, emitting the cookie header if it changed.
//  4. Write status and body.
func (engine *Engine) Render(writer http.ResponseWriter, request *http.Request, status int, page string, data Data) {
	ctx := request.Context()
	sess := ctxutil.GetSession(ctx)

	if data == nil {
		data = Data{}
	}
	data["Identity"] = ctxutil.GetIdentity(ctx)

	if sess != nil {
		data["Flashes"] = sess.Flashes()

		csrfToken, err := sess.CSRFToken()
		if err != nil {
			engine.Error(writer, request, err)
			return
		}
		data["CSRFToken"] = csrfToken
	}

	buffer, err := engine.execute(page, data)
	if err != nil {
		engine.Error(writer, request, err)
		return
	}

	if sess != nil {
		if err := engine.sessions.Save(ctx, writer, sess); err != nil {
			engine.Error(writer, request, err)
			return
		}
	}

	writeHTML(writer, status, buffer)
}

// Redirect persists the session and sends an HTTP 302 to target.
//
// Flash messages queued by the handler survive the hop because the session is
// saved before the redirect is written.
func (engine *Engine) Redirect(writer http.ResponseWriter, request *http.Request, target string) {
	ctx := request.Context()

	if sess := ctxutil.GetSession(ctx); sess != nil {
		if err := engine.sessions.Save(ctx, writer, sess); err != nil {
			engine.Error(writer, request, err)
			return
		}
	}

	http.Redirect(writer, request, target, http.StatusFound)
}

// Error converts any Go error into a rendered HTML error page.
//
// Unexpected errors are logged with full details but reach the visitor only
// as a generic 500 page.
func (engine *Engine) Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger.ErrorContext(ctx, "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(ctx, "web_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	data := Data{
		"Identity": ctxutil.GetIdentity(ctx),
		"Status":   appError.HTTPStatus,
		"Message":  appError.Message,
	}

	buffer, execErr := engine.execute(errorPage, data)
	if execErr != nil {
		// The error page itself failed; fall back to a bare response.
		logger.ErrorContext(ctx, "error_page_render_failed", slog.String("error", execErr.Error()))
		http.Error(writer, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	// Persist pending session writes (e.g. a flash queued before the failure).
	// A save failure here is logged rather than recursed into.
	if sess := ctxutil.GetSession(ctx); sess != nil && sess.IsDirty() {
		if saveErr := engine.sessions.Save(ctx, writer, sess); saveErr != nil {
			logger.ErrorContext(ctx, "session_save_failed", slog.String("error", saveErr.Error()))
		}
	}

	writeHTML(writer, appError.HTTPStatus, buffer)
}

// execute runs the named page template into a buffer.
func (engine *Engine) execute(page string, data Data) (*bytes.Buffer, error) {
	parsed, ok := engine.pages[page]
	if !ok {
		return nil, fmt.Errorf("render: unknown template %q", page)
	}

	buffer := new(bytes.Buffer)
	if err := parsed.ExecuteTemplate(buffer, "base.html", data); err != nil {
		return nil, fmt.Errorf("render: failed to execute %s: %w", page, err)
	}
	return buffer, nil
}

// writeHTML flushes a fully rendered buffer to the client.
func writeHTML(writer http.ResponseWriter, status int, buffer *bytes.Buffer) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}
