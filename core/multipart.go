package core

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// FormPart is one named part of a multipart/form-data body. Either Data or
// Reader supplies the content.
type FormPart struct {
	Name        string
	Filename    string
	ContentType string
	Data        []byte
	Reader      io.Reader
}

func FilePart(name, filename, contentType string, content io.Reader) FormPart {
	return FormPart{Name: name, Filename: filename, ContentType: contentType, Reader: content}
}

func FieldPart(name, value string) FormPart {
	return FormPart{Name: name, Data: []byte(value)}
}

func encodeMultipart(parts []FormPart) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, part := range parts {
		if strings.TrimSpace(part.Name) == "" {
			return nil, "", NewArgumentFault("form_part.name")
		}
		header := textproto.MIMEHeader{}
		disposition := fmt.Sprintf(`form-data; name="%s"`, escapeQuotes(part.Name))
		if part.Filename != "" {
			disposition += fmt.Sprintf(`; filename="%s"`, escapeQuotes(part.Filename))
		}
		header.Set("Content-Disposition", disposition)
		if part.ContentType != "" {
			header.Set("Content-Type", part.ContentType)
		} else if part.Filename != "" {
			header.Set("Content-Type", "application/octet-stream")
		}
		target, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", InternalFault("watson: multipart part: " + err.Error())
		}
		if part.Reader != nil {
			if _, err := io.Copy(target, part.Reader); err != nil {
				return nil, "", BadInputFault("watson: read multipart part "+part.Name, map[string]any{"error": err.Error()})
			}
			continue
		}
		if _, err := target.Write(part.Data); err != nil {
			return nil, "", InternalFault("watson: multipart part: " + err.Error())
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", InternalFault("watson: multipart close: " + err.Error())
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(value string) string {
	return quoteEscaper.Replace(value)
}
