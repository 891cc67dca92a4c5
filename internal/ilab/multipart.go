package ilab

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

const (
	fileField = "attachment[uploaded_data]"
	// Сервис называет поле name, а в интерфейсе показывает его как заметку к файлу.
	noteField = "attachment[name]"
)

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// multipartBody тело формы без буферизации файла: заголовок части, содержимое
// файла и закрывающий boundary читаются последовательно.
type multipartBody struct {
	ContentType string
	head        []byte
	tail        []byte
	size        int64
	summary     string
}

// switchWriter позволяет записать закрывающий boundary в отдельный буфер.
type switchWriter struct {
	io.Writer
}

func newMultipartBody(fileName, fileType string, size int64, note string) (*multipartBody, error) {
	var head, tail bytes.Buffer
	sw := &switchWriter{Writer: &head}
	mw := multipart.NewWriter(sw)

	var summary []string

	// Порядок как у обычной html-формы: сначала текстовые поля, потом файл.
	if note != "" {
		if err := mw.WriteField(noteField, note); err != nil {
			return nil, fmt.Errorf("write form field failed: %w", err)
		}
		summary = append(summary, fmt.Sprintf("%s=%q", noteField, note))
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(fileField), quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", fileType)
	if _, err := mw.CreatePart(h); err != nil {
		return nil, fmt.Errorf("create form file failed: %w", err)
	}
	summary = append(summary, fmt.Sprintf("%s=@%s (%s, %d bytes)", fileField, fileName, fileType, size))

	sw.Writer = &tail
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form failed: %w", err)
	}

	return &multipartBody{
		ContentType: mw.FormDataContentType(),
		head:        head.Bytes(),
		tail:        tail.Bytes(),
		size:        size,
		summary:     strings.Join(summary, "; "),
	}, nil
}

func (b *multipartBody) Len() int64 {
	return int64(len(b.head)) + b.size + int64(len(b.tail))
}

// Reader файл читается ровно на size байт, чтобы совпасть с Content-Length.
func (b *multipartBody) Reader(file io.Reader) io.Reader {
	return io.MultiReader(
		bytes.NewReader(b.head),
		io.LimitReader(file, b.size),
		bytes.NewReader(b.tail),
	)
}

// String описание тела для диагностики, без содержимого файла.
func (b *multipartBody) String() string {
	return b.summary
}
