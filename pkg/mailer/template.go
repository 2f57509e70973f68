package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Template is a campaign body split into front matter and markdown.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate extracts YAML front matter delimited by "---" lines.
// Content without a leading delimiter is returned as body with empty metadata.
func ParseTemplate(content []byte) (*Template, error) {
	delimiter := []byte("---")

	if !bytes.HasPrefix(content, delimiter) {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	end := bytes.Index(rest, delimiter)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	front := rest[:end]
	body := rest[end+len(delimiter):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	metadata := map[string]any{}
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: metadata, Body: string(body)}, nil
}

// ParseBody is ParseTemplate for free-form campaign text: a body whose front
// matter does not parse is treated entirely as markdown.
func ParseBody(body string) *Template {
	t, err := ParseTemplate([]byte(body))
	if err != nil {
		return &Template{Metadata: map[string]any{}, Body: body}
	}
	return t
}

// String returns the metadata value for key when it is a non-empty string.
func (t *Template) String(key string) string {
	if s, ok := t.Metadata[key].(string); ok {
		return s
	}
	return ""
}
