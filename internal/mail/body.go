package mail

import (
	"bytes"
	"fmt"
	"io"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
)

// ExtractBody returns the textual body of a raw RFC 822 message: the first
// text/plain or text/html part in walk order, or the whole decoded body for
// non-multipart messages. An empty string means no textual part exists.
func ExtractBody(raw []byte) (string, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return "", fmt.Errorf("parse message: %w", err)
	}

	return textualPart(entity)
}

func textualPart(entity *message.Entity) (string, error) {
	mr := entity.MultipartReader()
	if mr == nil {
		b, err := io.ReadAll(entity.Body)
		if err != nil {
			return "", fmt.Errorf("read body: %w", err)
		}
		return string(b), nil
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read part: %w", err)
		}

		if part.MultipartReader() != nil {
			body, err := textualPart(part)
			if err != nil {
				return "", err
			}
			if body != "" {
				return body, nil
			}
			continue
		}

		ct, _, _ := part.Header.ContentType()
		if ct == "text/plain" || ct == "text/html" {
			b, err := io.ReadAll(part.Body)
			if err != nil {
				return "", fmt.Errorf("read part body: %w", err)
			}
			return string(b), nil
		}
	}

	return "", nil
}
