package ilab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ilabattach/internal/logger"
	"ilabattach/internal/model"
)

// ResolveRequestID находит внутренний ID заявки по её имени в пределах ядра coreID.
// Пустой fromDate означает model.DefaultFromDate.
//
// Если под именем найдено несколько заявок, берётся первая из ответа.
func (c *Client) ResolveRequestID(ctx context.Context, name, coreID, fromDate string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &model.ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(coreID) == "" {
		return "", &model.ValidationError{Field: "core_id", Reason: "required to get request by name"}
	}
	if fromDate == "" {
		fromDate = model.DefaultFromDate
	}
	if err := model.ValidateFromDate(fromDate); err != nil {
		return "", err
	}

	uri := c.endpoint(url.Values{
		"name":      {name},
		"from_date": {fromDate},
	}, "cores", url.PathEscape(coreID), "service_requests.json")

	ctx, log := logger.With(ctx, "op", "resolve", "name", name, "coreID", coreID)

	req, err := newRequest(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", err
	}

	body, err := c.do(log, "resolve", req, "")
	if err != nil {
		return "", err
	}

	id, rerr := extractRequestID(body)
	if rerr != nil {
		rerr.Name = name
		log.Error("unexpected response", "error", rerr)
		return "", rerr
	}

	log.Debug("resolved", "id", id)
	return id, nil
}

// extractRequestID достаёт ilab_response.service_requests[0].id.
func extractRequestID(body []byte) (string, *model.ResolutionError) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return "", &model.ResolutionError{Err: fmt.Errorf("malformed response body: %w", err)}
	}

	resp, ok := lookup(root, "ilab_response")
	if !ok {
		return "", &model.ResolutionError{Key: "ilab_response"}
	}
	list, ok := lookup(resp, "service_requests")
	if !ok {
		return "", &model.ResolutionError{Key: "service_requests"}
	}
	requests, ok := list.([]any)
	if !ok || len(requests) == 0 {
		return "", &model.ResolutionError{Key: "service_requests[0]"}
	}
	rawID, ok := lookup(requests[0], "id")
	if !ok {
		return "", &model.ResolutionError{Key: "id"}
	}

	switch id := rawID.(type) {
	case json.Number:
		return id.String(), nil
	case string:
		if id != "" {
			return id, nil
		}
	}
	return "", &model.ResolutionError{Key: "id", Err: fmt.Errorf("unexpected id value %v", rawID)}
}

func lookup(v any, key string) (any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := obj[key]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}
