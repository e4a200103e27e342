package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestOkEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	Ok(c, gin.H{"answer": 42}, map[string]any{"cache_hit": true})

	if recorder.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", recorder.Code)
	}
	var body envelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body.Code != 0 || body.Message != "ok" {
		t.Fatalf("code=%d message=%q want=0/ok", body.Code, body.Message)
	}
	if body.Meta["cache_hit"] != true {
		t.Fatalf("meta=%v want cache_hit=true", body.Meta)
	}
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	Error(c, http.StatusNotFound, "", nil)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=404", recorder.Code)
	}
	var body envelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body.Code != http.StatusNotFound {
		t.Fatalf("code=%d want=404", body.Code)
	}
	if body.Message != http.StatusText(http.StatusNotFound) {
		t.Fatalf("message=%q want default status text", body.Message)
	}
	if body.Data != nil {
		t.Fatalf("data=%v want omitted", body.Data)
	}
}
