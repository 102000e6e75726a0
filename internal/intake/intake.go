package intake

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// ErrEmptyContent marks a file with no extractable text. Callers report
// it to the uploader; it never reaches the matcher.
var ErrEmptyContent = errors.New("intake: file has no extractable text")

// Validator checks uploaded resume files before they reach the matcher.
type Validator struct {
	AllowedExtensions []string
	MaxContentBytes   int64
}

func NewValidator(extensions []string, maxBytes int64) *Validator {
	return &Validator{
		AllowedExtensions: extensions,
		MaxContentBytes:   maxBytes,
	}
}

// Extract validates the filename and size, then returns the plain text
// content. HTML files are reduced to their visible text.
func (v *Validator) Extract(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !v.allowed(ext) {
		return "", fmt.Errorf("intake: unsupported file extension %q", ext)
	}

	data, err := io.ReadAll(io.LimitReader(r, v.MaxContentBytes+1))
	if err != nil {
		return "", fmt.Errorf("intake: reading %s: %w", filename, err)
	}
	if int64(len(data)) > v.MaxContentBytes {
		return "", fmt.Errorf("intake: %s exceeds the %d byte limit", filename, v.MaxContentBytes)
	}

	var text string
	switch ext {
	case ".html", ".htm":
		text, err = extractHTMLText(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("intake: parsing %s: %w", filename, err)
		}
	default:
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

func (v *Validator) allowed(ext string) bool {
	for _, allowed := range v.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// extractHTMLText walks the token stream collecting visible text,
// skipping script and style bodies.
func extractHTMLText(body io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(body)
	var textBuilder strings.Builder
	inScript := false
	inStyle := false

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return cleanText(textBuilder.String()), nil
			}
			return "", tokenizer.Err()

		case html.StartTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "script":
				inScript = true
			case "style":
				inStyle = true
			}

		case html.EndTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "script":
				inScript = false
			case "style":
				inStyle = false
			}

		case html.TextToken:
			if inScript || inStyle {
				continue
			}
			textBuilder.WriteString(tokenizer.Token().Data)
			textBuilder.WriteString(" ")
		}
	}
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
