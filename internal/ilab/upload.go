package ilab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"ilabattach/internal/logger"
	"ilabattach/internal/model"
)

// Класс объекта, к которому крепится файл: заявка на услугу.
const objectClass = "ServiceItem"

var errNotRegular = errors.New("not a regular file")

// UploadAttachment прикладывает файл к заявке requestID и возвращает ответ
// сервиса как есть. Файл проверяется до любых сетевых запросов.
func (c *Client) UploadAttachment(ctx context.Context, requestID string, att model.Attachment) (model.UploadResult, error) {
	if err := model.ValidateRequestID(requestID); err != nil {
		return nil, err
	}

	file, info, err := openAttachment(att.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ctx, log := logger.With(ctx, "op", "upload", "id", requestID, "file", file.Name())

	magic := make([]byte, magicLen)
	n, _ := file.ReadAt(magic, 0)
	fileType := detectContentType(magic[:n], info.Name())

	body, err := newMultipartBody(info.Name(), fileType, info.Size(), att.Note)
	if err != nil {
		return nil, err
	}

	uri := c.endpoint(url.Values{
		"object_class": {objectClass},
		"id":           {requestID},
	}, "attachments")

	req, err := newRequest(ctx, http.MethodPost, uri, body.Reader(file))
	if err != nil {
		return nil, err
	}
	req.ContentLength = body.Len()
	req.Header.Set("Content-Type", body.ContentType)

	resp, err := c.do(log, "upload", req, body.String())
	if err != nil {
		return nil, err
	}

	if !json.Valid(resp) {
		log.Error("invalid json in response", "body", string(resp[:min(len(resp), maxErrorBodyLen)]))
		return nil, fmt.Errorf("upload: invalid JSON in response from %s", uri)
	}

	log.Debug("success", "size", info.Size(), "contentType", fileType)
	return model.UploadResult(resp), nil
}

// openAttachment открывает файл и возвращает его вместе с os.FileInfo.
// Любая проблема с существующим путём это FileNotFoundError с абсолютным путём.
func openAttachment(path string) (*os.File, os.FileInfo, error) {
	if path == "" {
		return nil, nil, &model.ValidationError{Field: "file", Reason: "required"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, nil, &model.FileNotFoundError{Path: abs, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, nil, &model.FileNotFoundError{Path: abs, Err: errNotRegular}
	}

	file, err := os.Open(abs)
	if err != nil {
		return nil, nil, &model.FileNotFoundError{Path: abs, Err: err}
	}
	return file, info, nil
}
