package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pagemark/internal/handlers"
	handlermocks "pagemark/internal/handlers/mocks"
	"pagemark/internal/highlight"
	"pagemark/internal/messaging"
	"pagemark/internal/service"
	"pagemark/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

type testDeps struct {
	highlights  *mocks.MockHighlightService
	definitions *mocks.MockDefinitionService
	pages       *mocks.MockPageService
	tabs        *handlermocks.MockTabRelay
	store       *handlermocks.MockPinger
}

func newTestRouter(t *testing.T, indexHTML string) (http.Handler, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	d := testDeps{
		highlights:  mocks.NewMockHighlightService(ctrl),
		definitions: mocks.NewMockDefinitionService(ctrl),
		pages:       mocks.NewMockPageService(ctrl),
		tabs:        handlermocks.NewMockTabRelay(ctrl),
		store:       handlermocks.NewMockPinger(ctrl),
	}
	hub := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	router := NewRouter(&Deps{
		Highlights:     d.highlights,
		Definitions:    d.definitions,
		Pages:          d.pages,
		Tabs:           d.tabs,
		Hub:            hub,
		Store:          d.store,
		CollectionName: "highlights",
		IndexHTML:      indexHTML,
	})
	return router, d
}

func TestNewRouter(t *testing.T) {
	router, _ := newTestRouter(t, "<html><body>Test</body></html>")

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		mockSetup  func(testDeps)
		wantStatus int
	}{
		{
			name:       "GET root serves HTML",
			method:     http.MethodGet,
			path:       "/",
			mockSetup:  func(testDeps) {},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/highlights",
			method: http.MethodGet,
			path:   "/api/highlights?q=go",
			mockSetup: func(d testDeps) {
				d.highlights.EXPECT().List(gomock.Any(), "go").Return(service.ListResult{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "DELETE /api/highlights/{id}",
			method: http.MethodDelete,
			path:   "/api/highlights/abc",
			mockSetup: func(d testDeps) {
				d.highlights.EXPECT().Delete(gomock.Any(), "abc").Return(true, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "DELETE /api/highlights",
			method: http.MethodDelete,
			path:   "/api/highlights",
			mockSetup: func(d testDeps) {
				d.highlights.EXPECT().ClearAll(gomock.Any()).Return(0, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/highlights/export is not an id",
			method: http.MethodGet,
			path:   "/api/highlights/export",
			mockSetup: func(d testDeps) {
				d.highlights.EXPECT().Export(gomock.Any()).
					Return(service.ExportResult{Document: highlight.Export{Version: highlight.ExportVersion}, FileName: "x.json"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/highlights/similar",
			method: http.MethodGet,
			path:   "/api/highlights/similar?q=go",
			mockSetup: func(d testDeps) {
				d.highlights.EXPECT().Similar(gomock.Any(), "go", 0).Return(nil, service.ErrUnavailable)
			},
			wantStatus: http.StatusNotImplemented,
		},
		{
			name:   "PUT /api/settings/api-key",
			method: http.MethodPut,
			path:   "/api/settings/api-key",
			body:   `{"apiKey":"sk"}`,
			mockSetup: func(d testDeps) {
				d.highlights.EXPECT().SetAPIKey(gomock.Any(), "sk").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "POST /api/define exists",
			method:     http.MethodPost,
			path:       "/api/define",
			mockSetup:  func(testDeps) {},
			wantStatus: http.StatusBadRequest, // Bad request due to empty body, but route exists
		},
		{
			name:       "GET /api/define method not allowed",
			method:     http.MethodGet,
			path:       "/api/define",
			mockSetup:  func(testDeps) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "POST /api/pages/restore",
			method: http.MethodPost,
			path:   "/api/pages/restore",
			body:   `{"url":"https://a.example/","content":"<p>x</p>"}`,
			mockSetup: func(d testDeps) {
				d.pages.EXPECT().Restore(gomock.Any(), gomock.Any()).Return(service.PageResult{Content: "<p>x</p>"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/tabs",
			method: http.MethodGet,
			path:   "/api/tabs",
			mockSetup: func(d testDeps) {
				d.tabs.EXPECT().Tabs().Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST /api/tabs/active/definition",
			method: http.MethodPost,
			path:   "/api/tabs/active/definition",
			body:   `{"text":"word"}`,
			mockSetup: func(d testDeps) {
				d.tabs.EXPECT().ShowDefinition(gomock.Any(), "word").Return(messaging.ErrNoActiveTab)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "GET /api/health",
			method: http.MethodGet,
			path:   "/api/health",
			mockSetup: func(d testDeps) {
				d.store.EXPECT().Ping(gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /ws reaches the hub",
			method:     http.MethodGet,
			path:       "/ws",
			mockSetup:  func(testDeps) {},
			wantStatus: http.StatusTeapot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, d := newTestRouter(t, "<html><body>Test</body></html>")
			tt.mockSetup(d)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_RootServesHTML(t *testing.T) {
	htmlContent := "<html><body>Test HTML</body></html>"
	router, _ := newTestRouter(t, htmlContent)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Router GET / status = %v, want %v", w.Code, http.StatusOK)
	}

	if w.Body.String() != htmlContent {
		t.Errorf("Router GET / body = %v, want %v", w.Body.String(), htmlContent)
	}

	if w.Header().Get("Content-Type") != "text/html; charset=utf-8" {
		t.Errorf("Router GET / Content-Type = %v, want text/html; charset=utf-8", w.Header().Get("Content-Type"))
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	router, _ := newTestRouter(t, "<html></html>")

	req := httptest.NewRequest(http.MethodPost, "/api/define", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check CORS headers are present
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}

func TestRouter_WithoutTabs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(&Deps{
		Highlights:  mocks.NewMockHighlightService(ctrl),
		Definitions: mocks.NewMockDefinitionService(ctrl),
		Pages:       mocks.NewMockPageService(ctrl),
		Store:       handlermocks.NewMockPinger(ctrl),
	})

	for _, path := range []string{"/api/tabs", "/ws"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, w.Code)
		}
	}
}

var _ handlers.TabRelay = (*messaging.Hub)(nil)
