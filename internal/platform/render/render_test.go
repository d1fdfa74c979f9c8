// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkstone/internal/platform/apperr"
	"github.com/taibuivan/inkstone/internal/platform/ctxutil"
	"github.com/taibuivan/inkstone/internal/platform/render"
	"github.com/taibuivan/inkstone/internal/platform/sec"
	"github.com/taibuivan/inkstone/internal/platform/session"
)

// templateFS builds a minimal layout/page set for engine tests.
func templateFS() fstest.MapFS {
	return fstest.MapFS{
		"templates/base.html": &fstest.MapFile{Data: []byte(
			`<main>{{block "content" .}}{{end}}</main>`,
		)},
		"templates/greet.html": &fstest.MapFile{Data: []byte(
			`{{define "content"}}Hello {{.Name}}{{if .Identity}} ({{.Identity.Username}}){{end}}{{range .Flashes}}[{{.}}]{{end}}{{end}}`,
		)},
		"templates/error.html": &fstest.MapFile{Data: []byte(
			`{{define "content"}}{{.Status}}: {{.Message}}{{end}}`,
		)},
	}
}

// nullStore satisfies [session.Store] without persisting anything.
type nullStore struct{}

func (nullStore) Load(context.Context, string) (map[string]string, error) {
	return nil, apperr.NotFound("Session")
}

func (nullStore) Save(context.Context, string, map[string]string, time.Duration) error {
	return nil
}

func (nullStore) Delete(context.Context, string) error { return nil }

func newTestEngine(t *testing.T) *render.Engine {
	t.Helper()
	engine, err := render.NewEngine(templateFS(), session.NewManager(nullStore{}, false))
	require.NoError(t, err)
	return engine
}

/*
TestNewEngine_RequiresErrorPage verifies the engine refuses to start without
a fallback error template.
*/
func TestNewEngine_RequiresErrorPage(t *testing.T) {
	fsys := templateFS()
	delete(fsys, "templates/error.html")

	_, err := render.NewEngine(fsys, session.NewManager(nullStore{}, false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error.html")
}

/*
TestEngine_Render verifies page execution with the reserved keys injected.
*/
func TestEngine_Render(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("anonymous_request", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)

		engine.Render(recorder, request, http.StatusOK, "greet.html", render.Data{"Name": "World"})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, recorder.Body.String(), "Hello World")
	})

	t.Run("identity_and_flashes_are_injected", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)

		sess := session.New()
		sess.AddFlash("Saved")

		ctx := ctxutil.WithSession(request.Context(), sess)
		ctx = ctxutil.WithIdentity(ctx, &sec.Identity{UserID: 7, Username: "alice"})

		engine.Render(recorder, request.WithContext(ctx), http.StatusOK, "greet.html", render.Data{"Name": "World"})

		body := recorder.Body.String()
		assert.Contains(t, body, "(alice)")
		assert.Contains(t, body, "[Saved]")

		// Rendering consumed the flash queue
		assert.Empty(t, sess.Flashes())
	})

	t.Run("unknown_page_becomes_error_page", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)

		engine.Render(recorder, request, http.StatusOK, "missing.html", nil)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

/*
TestEngine_Error verifies the error page rendering for classified and
unclassified failures.
*/
func TestEngine_Error(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not_found", apperr.NotFound("Post id 7"), http.StatusNotFound, "404: Post id 7 not found"},
		{"forbidden", apperr.Forbidden("You are not the author of this post"), http.StatusForbidden, "403:"},
		{"unclassified_is_masked", errors.New("pq: connection refused"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			engine.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)

			// Internal details never leak
			assert.NotContains(t, recorder.Body.String(), "connection refused")
		})
	}
}

/*
TestEngine_Redirect verifies the session is saved before the hop so queued
flashes survive.
*/
func TestEngine_Redirect(t *testing.T) {
	engine := newTestEngine(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	sess := session.New()
	sess.AddFlash("Saved")
	ctx := ctxutil.WithSession(request.Context(), sess)

	engine.Redirect(recorder, request.WithContext(ctx), "/next")

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/next", recorder.Header().Get("Location"))

	// The dirty session earned a token, so the client got a cookie
	require.NotEmpty(t, sess.Token())
	assert.NotEmpty(t, recorder.Result().Cookies())
}
