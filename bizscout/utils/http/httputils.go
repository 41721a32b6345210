package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rotisserie/eris"
)

// maxResponseBody bounds how much of a response body is read back.
const maxResponseBody = 64 << 10

// PostJSON marshals body and posts it to url. It returns the status code and
// response body whenever a response arrived; err is set only when no response
// could be read.
func PostJSON(ctx context.Context, client *http.Client, url string, body any) (int, string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return 0, "", eris.Wrap(err, "marshal request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return 0, "", eris.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	r, err := client.Do(req)
	if err != nil {
		return 0, "", eris.Wrap(err, "post")
	}
	defer r.Body.Close()

	data, err := io.ReadAll(io.LimitReader(r.Body, maxResponseBody))
	if err != nil {
		return r.StatusCode, "", eris.Wrap(err, "read response body")
	}
	return r.StatusCode, string(data), nil
}

// IsSuccess reports whether status is one of 200, 201 or 202.
func IsSuccess(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated || status == http.StatusAccepted
}
