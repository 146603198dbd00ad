package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/pharmadmin/internal/common"
)

// Upload sends one asset as a multipart "file" part and returns the URL the
// API stored it under.
func (c *RESTClient) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(common.UploadFieldName, filename)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}

	var res struct {
		URL string `json:"url"`
	}
	if _, err := c.do(ctx, http.MethodPost, "upload", nil, &buf, mw.FormDataContentType(), &res); err != nil {
		return "", err
	}
	if res.URL == "" {
		return "", &APIError{Kind: ErrUnavailable, Message: "upload response carried no url"}
	}
	return res.URL, nil
}
