package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func traceRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("trace_id"))
	})
	return r
}

func TestTraceIDMintedWhenAbsent(t *testing.T) {
	router := traceRouter()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	header := w.Header().Get(TraceIDHeader)
	if _, err := uuid.Parse(header); err != nil {
		t.Fatalf("response header %q is not a uuid: %v", header, err)
	}
	if w.Body.String() != header {
		t.Errorf("context trace id %q differs from header %q", w.Body.String(), header)
	}
}

func TestTraceIDReusesInboundHeader(t *testing.T) {
	router := traceRouter()
	inbound := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceIDHeader, inbound)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get(TraceIDHeader); got != inbound {
		t.Errorf("header = %q, want the inbound id %q", got, inbound)
	}
	if w.Body.String() != inbound {
		t.Errorf("context trace id = %q, want %q", w.Body.String(), inbound)
	}
}

func TestTraceIDReplacesMalformedHeader(t *testing.T) {
	router := traceRouter()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceIDHeader, "not-a-uuid; drop table")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	header := w.Header().Get(TraceIDHeader)
	if _, err := uuid.Parse(header); err != nil {
		t.Fatalf("malformed inbound id was not replaced, header %q", header)
	}
	if header == "not-a-uuid; drop table" {
		t.Error("malformed inbound id must not be echoed back")
	}
}
