package groupme

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"resty.dev/v3"

	"groupme/internal/core"
)

var ErrNoSession = errors.New("login did not return a session")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("groupme: %d %s", e.Status, e.Message)
}

// Unwrap exposes the error kind matching the status code.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return core.ErrValidation
	case http.StatusUnauthorized:
		return core.ErrUnauthenticated
	case http.StatusForbidden:
		return core.ErrUnauthorized
	case http.StatusNotFound:
		return core.ErrNotFound
	case http.StatusConflict:
		return core.ErrConflict
	default:
		return nil
	}
}

type Client struct {
	client *resty.Client
}

func NewClient(config *ClientConfig) *Client {
	client := resty.NewWithTransportSettings(config.TransportSettings).
		SetBaseURL(config.BaseURL)

	if config.Token != "" {
		client.SetAuthToken(config.Token)
	}
	for _, m := range config.RequestMiddlewares {
		client.AddRequestMiddleware(m)
	}
	for _, m := range config.ResponseMiddlewares {
		client.AddResponseMiddleware(m)
	}

	return &Client{
		client: client,
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// r starts a request whose non-2xx body is decoded into an ack.
func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx).SetError(&ack{})
}

// ack is the server's mutation acknowledgement.
type ack struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func check(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !res.IsError() {
		return nil
	}

	message := res.Status()
	if body, ok := res.Error().(*ack); ok && body.Message != "" {
		message = body.Message
	}
	return &APIError{Status: res.StatusCode(), Message: message}
}
