package logger

import (
	"net/http"
	"time"
)

// Transport логирует исходящие запросы. Заголовки запроса не логируются
// совсем: в них лежит bearer-токен.
type Transport struct {
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	log := FromContext(req.Context()).With("method", req.Method, "url", req.URL.String())
	log.Debug("request sent", "contentLength", req.ContentLength)

	start := time.Now()
	resp, err := base.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Debug("request failed", "error", err, "elapsed", elapsed)
		return nil, err
	}

	log.Debug("response received",
		"status", resp.StatusCode,
		"contentType", resp.Header.Get("Content-Type"),
		"elapsed", elapsed)
	return resp, nil
}
