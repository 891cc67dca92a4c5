package ilab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"ilabattach/internal/config"
	"ilabattach/internal/model"
)

const (
	// Сколько байт тела ответа об ошибке сохраняем для диагностики.
	maxErrorBodyLen = 4096
	// Ответ с данными заявки не бывает большим, но совсем без лимита читать не будем.
	maxResponseLen = 32 << 20
)

// Client тонкая обёртка над iLab REST API.
type Client struct {
	client  *http.Client
	baseURL *url.URL
	auth    string
}

// New базовый URL должен заканчиваться на '/', config.Load это гарантирует.
func New(client *http.Client, api config.API) (*Client, error) {
	if api.Token == "" {
		return nil, fmt.Errorf("%w: %s is empty", model.ErrConfiguration, config.TokenEnv)
	}
	base, err := url.Parse(api.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base url: %v", model.ErrConfiguration, err)
	}
	if client == nil {
		client = &http.Client{Timeout: api.Timeout}
	}
	return &Client{
		client:  client,
		baseURL: base,
		auth:    api.Token.AuthorizationHeader(),
	}, nil
}

func (c *Client) endpoint(query url.Values, elem ...string) string {
	u := c.baseURL.JoinPath(elem...)
	u.RawQuery = query.Encode()
	return u.String()
}

// do выполняет запрос. Ответ с любым статусом кроме 2xx превращается в
// RemoteServiceError, тело успешного ответа возвращается целиком.
func (c *Client) do(log *slog.Logger, op string, req *http.Request, reqBody string) ([]byte, error) {
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("request failed", "error", err)
		return nil, &model.TransportError{Op: op, URL: req.URL.String(), Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		rerr := &model.RemoteServiceError{
			Op:          op,
			URL:         req.URL.String(),
			StatusCode:  resp.StatusCode,
			Status:      resp.Status,
			RequestBody: reqBody,
			Header:      resp.Header.Clone(),
			Body:        string(body),
		}
		log.Error("unexpected status",
			"url", rerr.URL,
			"requestBody", rerr.RequestBody,
			"status", rerr.StatusCode,
			"headers", rerr.Header,
			"body", rerr.Body)
		return nil, rerr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseLen))
	if err != nil {
		log.Error("read response failed", "error", err)
		return nil, &model.TransportError{Op: op, URL: req.URL.String(), Err: err}
	}
	return body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// unwrapURLError *url.Error повторяет метод и URL, которые и так есть в TransportError.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func newRequest(ctx context.Context, method, uri string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	return req, nil
}
