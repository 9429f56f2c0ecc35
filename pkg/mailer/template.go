package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

var utf8BOM = []byte("\xef\xbb\xbf")

// Template represents an email template with metadata and body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate splits template content into YAML frontmatter metadata and body.
// Frontmatter is recognised only when the first line is exactly "---"; it ends at
// the next line that is exactly "---". Both \n and \r\n line endings are accepted.
func ParseTemplate(content []byte) (*Template, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	first, rest, found := cutLine(content)
	if string(first) != frontmatterDelimiter {
		return &Template{Metadata: make(map[string]any), Body: string(content)}, nil
	}
	if !found || len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	var frontmatter, body []byte
	for remaining := rest; ; {
		line, next, more := cutLine(remaining)
		if string(line) == frontmatterDelimiter {
			frontmatter = rest[:len(rest)-len(remaining)]
			body = next
			break
		}
		if !more {
			return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
		}
		remaining = next
	}

	metadata := make(map[string]any)
	if len(bytes.TrimSpace(frontmatter)) > 0 {
		if err := yaml.Unmarshal(frontmatter, &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
		if metadata == nil {
			metadata = make(map[string]any)
		}
	}

	return &Template{Metadata: metadata, Body: string(body)}, nil
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}
