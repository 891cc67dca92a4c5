package model

import (
	"encoding/json"
	"strings"
	"time"
)

// DefaultFromDate нижняя граница поиска заявки по имени. API по умолчанию ищет
// только за последние два года, поэтому берём дату заведомо старше любой записи.
const DefaultFromDate = "2000-01-01"

const dateLayout = time.DateOnly

// RequestRef ссылка на заявку: либо числовой ID, либо имя + ID ядра (core).
// Должно быть задано ровно одно из ID и Name.
type RequestRef struct {
	ID       string
	Name     string
	CoreID   string
	FromDate string
}

// ByName сообщает, что заявку нужно сначала найти по имени.
func (r RequestRef) ByName() bool {
	return r.Name != ""
}

func (r RequestRef) Validate() error {
	id := strings.TrimSpace(r.ID)
	name := strings.TrimSpace(r.Name)

	switch {
	case id != "" && name != "":
		return &ValidationError{Field: "id", Reason: "id and name are mutually exclusive"}
	case id == "" && name == "":
		return &ValidationError{Field: "id", Reason: "either id or name is required"}
	case id != "":
		return ValidateRequestID(r.ID)
	}

	if strings.TrimSpace(r.CoreID) == "" {
		return &ValidationError{Field: "core_id", Reason: "required to get request by name"}
	}
	if r.FromDate != "" {
		return ValidateFromDate(r.FromDate)
	}
	return nil
}

func ValidateRequestID(id string) error {
	if id == "" {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return &ValidationError{Field: "id", Reason: "must contain digits only"}
		}
	}
	return nil
}

func ValidateFromDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return &ValidationError{Field: "from_date", Reason: "want ISO 8601 date like 2015-03-14"}
	}
	return nil
}

// Attachment локальный файл и необязательная заметка к нему.
//
// В API заметка передаётся полем "name", хотя в интерфейсе iLab она
// показывается как note под файлом.
type Attachment struct {
	Path string
	Note string
}

// UploadResult тело ответа сервиса после загрузки, без изменений.
type UploadResult = json.RawMessage
