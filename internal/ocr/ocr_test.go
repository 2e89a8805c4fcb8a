package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"invoice.pdf", true},
		{"invoice.PDF", true},
		{"scan.png", true},
		{"scan.jpg", true},
		{"scan.JPEG", true},
		{"mail.eml", false},
		{"report.xlsx", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.path))
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	pdf := &fakeExtractor{text: "pdf text"}
	image := &fakeExtractor{text: "image text"}
	r := &Router{pdf: pdf, image: image}

	text, err := r.ExtractText(context.Background(), "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf text", text)
	assert.Equal(t, 1, pdf.calls)
	assert.Equal(t, 0, image.calls)

	text, err = r.ExtractText(context.Background(), "b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image text", text)
	assert.Equal(t, 1, image.calls)
}

func TestRouterUnknownExtension(t *testing.T) {
	r := &Router{pdf: &fakeExtractor{}, image: &fakeExtractor{}}
	text, err := r.ExtractText(context.Background(), "notes.txt")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestCliToolCapturesStdout(t *testing.T) {
	tool := &cliTool{
		name: "echo",
		bin:  "echo",
		args: func(path string) []string { return []string{path} },
	}

	text, err := tool.ExtractText(context.Background(), "hello invoice")
	require.NoError(t, err)
	assert.Equal(t, "hello invoice\n", text)
}

func TestCliToolMissingBinary(t *testing.T) {
	tool := newTesseract("no-such-binary-on-this-host")
	_, err := tool.ExtractText(context.Background(), "scan.png")
	assert.Error(t, err)
}

func TestCliToolArguments(t *testing.T) {
	pdf := newPdfToText("")
	assert.Equal(t, "pdftotext", pdf.bin)
	assert.Equal(t, []string{"-layout", "a.pdf", "-"}, pdf.args("a.pdf"))

	img := newTesseract("/opt/tesseract")
	assert.Equal(t, "/opt/tesseract", img.bin)
	assert.Equal(t, []string{"b.png", "stdout"}, img.args("b.png"))
}

func TestRouterVisionFallback(t *testing.T) {
	t.Run("tesseract error falls back", func(t *testing.T) {
		image := &fakeExtractor{err: errors.New("tesseract: not found")}
		vision := &fakeExtractor{text: "vision text"}
		r := &Router{image: image, vision: vision}

		text, err := r.ExtractText(context.Background(), "scan.png")
		require.NoError(t, err)
		assert.Equal(t, "vision text", text)
		assert.Equal(t, 1, vision.calls)
	})

	t.Run("blank tesseract output falls back", func(t *testing.T) {
		image := &fakeExtractor{text: "   \n"}
		vision := &fakeExtractor{text: "vision text"}
		r := &Router{image: image, vision: vision}

		text, err := r.ExtractText(context.Background(), "scan.png")
		require.NoError(t, err)
		assert.Equal(t, "vision text", text)
	})

	t.Run("no vision backend surfaces the error", func(t *testing.T) {
		image := &fakeExtractor{err: errors.New("tesseract: not found")}
		r := &Router{image: image}

		_, err := r.ExtractText(context.Background(), "scan.png")
		assert.Error(t, err)
	})

	t.Run("usable tesseract output skips vision", func(t *testing.T) {
		image := &fakeExtractor{text: "real text"}
		vision := &fakeExtractor{text: "vision text"}
		r := &Router{image: image, vision: vision}

		text, err := r.ExtractText(context.Background(), "scan.png")
		require.NoError(t, err)
		assert.Equal(t, "real text", text)
		assert.Equal(t, 0, vision.calls)
	})
}
