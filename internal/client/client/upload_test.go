package client

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTClient_Upload(t *testing.T) {
	var gotName string
	var gotContent []byte
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		gotName = hdr.Filename
		gotContent, _ = io.ReadAll(f)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"url": "/uploads/abc.png"}})
	})

	u, err := c.Upload(context.Background(), "pill.png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc.png", u)
	assert.Equal(t, "pill.png", gotName)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, gotContent)
}

func TestRESTClient_UploadMissingURL(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
	})

	_, err := c.Upload(context.Background(), "a.png", []byte("x"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRESTClient_UploadRejected(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Only images are allowed"})
	})

	_, err := c.Upload(context.Background(), "a.exe", []byte("x"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Only images are allowed", Message(err))
}
