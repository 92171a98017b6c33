// Package extraction is the client for the remote document extraction
// service, which converts scanned or PDF statements into a structured
// transaction list. The service itself is an external collaborator; this
// package only speaks its wire contract.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"fjacquet/statement-import/internal/importerror"
	"fjacquet/statement-import/internal/logging"
)

// Transaction is one extracted record as returned by the service.
type Transaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
}

type response struct {
	Transactions []Transaction `json:"transactions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client calls the extraction endpoint with a multipart file upload.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        logging.Logger
}

// NewClient creates an extraction client. The timeout bounds the whole
// upload-and-extract round trip.
func NewClient(endpoint string, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger,
	}
}

// Extract uploads the document and returns the extracted transaction list.
// A gateway timeout from the service maps to RemoteTimeoutError; every other
// non-2xx response maps to RemoteExtractionError.
func (c *Client) Extract(ctx context.Context, fileName string, file io.Reader) ([]Transaction, error) {
	c.log.WithField("file", fileName).Info("Uploading document for extraction")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, &importerror.RemoteExtractionError{File: fileName, Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &importerror.RemoteExtractionError{File: fileName, Err: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &importerror.RemoteExtractionError{File: fileName, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, &importerror.RemoteExtractionError{File: fileName, Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &importerror.RemoteExtractionError{File: fileName, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WithError(err).Warn("Failed to close extraction response body")
		}
	}()

	switch {
	case resp.StatusCode == http.StatusGatewayTimeout:
		c.log.WithField("file", fileName).Warn("Extraction service timed out")
		return nil, &importerror.RemoteTimeoutError{File: fileName}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			errResp.Error = ""
		}
		return nil, &importerror.RemoteExtractionError{
			File:    fileName,
			Status:  resp.StatusCode,
			Message: errResp.Error,
		}
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &importerror.RemoteExtractionError{
			File: fileName,
			Err:  fmt.Errorf("decoding extraction response: %w", err),
		}
	}

	c.log.WithField("count", len(parsed.Transactions)).Info("Extraction completed")
	return parsed.Transactions, nil
}
