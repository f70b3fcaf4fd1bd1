package devigo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/developer9560/devigo-go/transport"
)

const uploadImagePath = "/uploads/image/"

// UploadsClient sends images to the upload endpoint, which stores them on
// the CDN and returns the resulting URL and public id.
type UploadsClient struct {
	transport *transport.Client
}

func newUploadsClient(t *transport.Client) *UploadsClient {
	return &UploadsClient{transport: t}
}

// UploadImage uploads one image as a multipart form under the "image"
// field. The reader is consumed in full before the request is sent.
func (c *UploadsClient) UploadImage(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	if filename == "" {
		return nil, fmt.Errorf("devigo: upload filename is required")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read image content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart form: %w", err)
	}

	var result UploadResult
	err = c.transport.Do(ctx, http.MethodPost, uploadImagePath, body.Bytes(), &result,
		transport.WithContentType(writer.FormDataContentType()))
	if err != nil {
		return nil, err
	}
	return &result, nil
}
