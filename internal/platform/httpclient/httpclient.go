// Package httpclient es el transporte JSON del cliente de consola.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"

	"github.com/google/uuid"
)

const (
	DefaultTimeout = 10 * time.Second

	RequestIDHeader = "X-Request-Id"
)

// Client envuelve *http.Client con BaseURL y request id por llamada.
type Client struct {
	HTTP    *http.Client
	BaseURL string

	// RequestID genera el X-Request-Id de cada request; default uuid v4.
	RequestID func() string
}

// New crea un Client apuntando a baseURL (sin barra final).
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL = strings.TrimSpace(baseURL)
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   strings.TrimRight(baseURL, "/"),
		RequestID: uuid.NewString,
	}, nil
}

// HTTPError representa una respuesta no-2xx. Message es el campo "error"
// del cuerpo cuando el servidor lo envía.
type HTTPError struct {
	StatusCode int
	Message    string
	Details    []apperr.FieldError
	RequestID  string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Unwrap traduce el status al Kind de apperr, así el cliente puede usar
// errors.Is(err, apperr.ErrNotFound) igual que del lado servidor.
func (e *HTTPError) Unwrap() error {
	var kind apperr.Kind
	switch e.StatusCode {
	case http.StatusNotFound:
		kind = apperr.KindNotFound
	case http.StatusBadRequest:
		kind = apperr.KindValidation
	case http.StatusConflict:
		kind = apperr.KindConstraint
	default:
		kind = apperr.KindUnexpected
	}
	return &apperr.Error{Kind: kind, Message: e.Message, Fields: e.Details}
}

// DoJSON hace un request JSON contra BaseURL+path.
// in nil => sin body; out nil => ignora la respuesta.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := ""
	if c.RequestID != nil {
		reqID = c.RequestID()
		req.Header.Set(RequestIDHeader, reqID)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := readAtMost(resp.Body, 1<<20)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, reqID, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func decodeError(status int, reqID string, raw []byte) *HTTPError {
	e := &HTTPError{
		StatusCode: status,
		RequestID:  reqID,
		Body:       strings.TrimSpace(string(raw)),
	}
	var payload struct {
		Error   string              `json:"error"`
		Details []apperr.FieldError `json:"details"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		e.Message = payload.Error
		e.Details = payload.Details
	}
	return e
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = 1 << 20
	}
	return io.ReadAll(io.LimitReader(r, max))
}
