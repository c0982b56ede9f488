package log

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(io.Discard) })

	h := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/responses", nil))

	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), `GET http://example.com/responses`)
	assert.Contains(t, buf.String(), "418")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(io.Discard)
		SetLevel(InfoLevel)
	})

	Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetLevel(DebugLevel)
	Debugf("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}
