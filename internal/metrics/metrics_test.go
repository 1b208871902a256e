package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCollector()
	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/api/articles/:id/like", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/articles/Q1/like", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body, _ := io.ReadAll(w.Result().Body)
	bodyStr := string(body)

	if !strings.Contains(bodyStr, "wikitok_http_requests_total") {
		t.Error("response should contain wikitok_http_requests_total")
	}
	if !strings.Contains(bodyStr, `route="/api/articles/:id/like"`) {
		t.Error("requests should be labeled by route pattern, not raw path")
	}
}

func TestMiddlewareLabelsUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCollector()
	r := gin.New()
	r.Use(c.Middleware())

	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(w.Result().Body)
	if !strings.Contains(string(body), `route="unmatched"`) {
		t.Error("unmatched requests should fall under the unmatched label")
	}
}
