package ilab

import (
	"bytes"
	"mime"
	"path/filepath"
)

const (
	magicLen           = 8
	defaultContentType = "application/octet-stream"
)

type fileType struct {
	MIMEType string
	Magic    []byte // сигнатура файла
}

// Сигнатуры того, что обычно прикладывают к заявкам в лаборатории:
// отчёты, картинки гелей, архивы с данными.
var fileTypes = []fileType{
	{MIMEType: "application/pdf", Magic: []byte{0x25, 0x50, 0x44, 0x46}}, // %PDF
	{MIMEType: "image/png", Magic: []byte{0x89, 0x50, 0x4E, 0x47}},       // ‰PNG
	{MIMEType: "image/jpeg", Magic: []byte{0xFF, 0xD8, 0xFF}},            // ÿØÿ
	{MIMEType: "image/gif", Magic: []byte{0x47, 0x49, 0x46, 0x38}},       // GIF8
	{MIMEType: "image/tiff", Magic: []byte{0x49, 0x49, 0x2A, 0x00}},      // II*
	{MIMEType: "image/tiff", Magic: []byte{0x4D, 0x4D, 0x00, 0x2A}},      // MM*
	{MIMEType: "application/gzip", Magic: []byte{0x1F, 0x8B}},
	{MIMEType: "application/zip", Magic: []byte{0x50, 0x4B, 0x03, 0x04}},                   // PK
	{MIMEType: "application/x-7z-compressed", Magic: []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27}}, // 7z
}

// detectContentType определяет тип по сигнатуре, затем по расширению.
// Для zip сначала смотрим расширение: docx и xlsx тоже zip.
func detectContentType(magic []byte, fileName string) string {
	byExt := mime.TypeByExtension(filepath.Ext(fileName))

	for _, ft := range fileTypes {
		if !bytes.HasPrefix(magic, ft.Magic) {
			continue
		}
		if ft.MIMEType == "application/zip" && byExt != "" {
			return byExt
		}
		return ft.MIMEType
	}

	if byExt != "" {
		return byExt
	}
	return defaultContentType
}
