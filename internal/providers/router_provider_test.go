package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Path))
	})
}

func TestRouterProvider_KeepsRegistrationOrder(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/use", echoPath())
	rp.Get("/ledger", echoPath())
	rp.Handle(http.MethodPost, "/prompt", echoPath())

	routes := rp.GetRoutes()
	require.Len(t, routes, 3)
	assert.Equal(t, "/use", routes[0].Url)
	assert.Equal(t, "/ledger", routes[1].Url)
	assert.Equal(t, "/prompt", routes[2].Url)
}

func TestRouterProvider_EnforcesMethod(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/eligibility", echoPath())
	rp.Post("/event", echoPath())
	rp.Handle(http.MethodPut, "/reset", echoPath())

	handlers := map[string]http.Handler{}
	for _, r := range rp.GetRoutes() {
		handlers[r.Url] = r.Handler
	}

	tests := []struct {
		method, url string
		status      int
		allow       string
	}{
		{http.MethodGet, "/eligibility", http.StatusOK, ""},
		{http.MethodPost, "/eligibility", http.StatusMethodNotAllowed, http.MethodGet},
		{http.MethodPost, "/event", http.StatusOK, ""},
		{http.MethodGet, "/event", http.StatusMethodNotAllowed, http.MethodPost},
		{http.MethodPut, "/reset", http.StatusOK, ""},
		{http.MethodDelete, "/reset", http.StatusMethodNotAllowed, http.MethodPut},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handlers[tt.url].ServeHTTP(rr, httptest.NewRequest(tt.method, tt.url, nil))

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.allow, rr.Header().Get("Allow"))
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.url, rr.Body.String())
			}
		})
	}
}
