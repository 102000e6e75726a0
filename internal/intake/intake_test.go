package intake_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resume-matcher/backend/internal/intake"
)

func newValidator() *intake.Validator {
	return intake.NewValidator([]string{".txt", ".md", ".html", ".htm"}, 1<<20)
}

func TestExtractPlainText(t *testing.T) {
	v := newValidator()

	text, err := v.Extract("resume.txt", strings.NewReader("Senior Go engineer"))

	require.NoError(t, err)
	assert.Equal(t, "Senior Go engineer", text)
}

func TestExtractRejectsUnsupportedExtension(t *testing.T) {
	v := newValidator()

	_, err := v.Extract("resume.exe", strings.NewReader("whatever"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestExtractExtensionIsCaseInsensitive(t *testing.T) {
	v := newValidator()

	text, err := v.Extract("RESUME.TXT", strings.NewReader("content"))

	require.NoError(t, err)
	assert.Equal(t, "content", text)
}

func TestExtractRejectsOversizedFile(t *testing.T) {
	v := intake.NewValidator([]string{".txt"}, 10)

	_, err := v.Extract("big.txt", strings.NewReader("this content is longer than ten bytes"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "byte limit")
}

func TestExtractRejectsEmptyContent(t *testing.T) {
	v := newValidator()

	_, err := v.Extract("empty.txt", strings.NewReader("   \n\t  "))

	assert.ErrorIs(t, err, intake.ErrEmptyContent)
}

func TestExtractHTMLText(t *testing.T) {
	v := newValidator()
	page := `<html><head>
		<style>body { color: red; }</style>
		<script>console.log("skip me");</script>
	</head><body>
		<h1>Jane Doe</h1>
		<p>Senior <b>Go</b> engineer</p>
	</body></html>`

	text, err := v.Extract("resume.html", strings.NewReader(page))

	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Senior Go engineer")
	assert.NotContains(t, text, "color")
	assert.NotContains(t, text, "skip me")
}

func TestExtractHTMLWithOnlyMarkupIsEmpty(t *testing.T) {
	v := newValidator()

	_, err := v.Extract("empty.html", strings.NewReader("<html><body><div></div></body></html>"))

	assert.ErrorIs(t, err, intake.ErrEmptyContent)
}
