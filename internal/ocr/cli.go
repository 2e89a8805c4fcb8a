package ocr

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/rotisserie/eris"
)

// cliTool shells out to an external extraction binary and captures its
// stdout. Both document backends reduce to the same shape: a binary, fixed
// arguments around the input path, and plain text on stdout.
type cliTool struct {
	name string
	bin  string
	args func(path string) []string
}

// newPdfToText extracts PDF text with pdftotext -layout. The -layout flag
// keeps columns in their printed positions, which the table-style field
// patterns rely on.
func newPdfToText(bin string) *cliTool {
	if bin == "" {
		bin = "pdftotext"
	}
	return &cliTool{
		name: "pdftotext",
		bin:  bin,
		args: func(path string) []string { return []string{"-layout", path, "-"} },
	}
}

// newTesseract OCRs scanned images with tesseract.
func newTesseract(bin string) *cliTool {
	if bin == "" {
		bin = "tesseract"
	}
	return &cliTool{
		name: "tesseract",
		bin:  bin,
		// "stdout" as the output base makes tesseract print instead of writing a file.
		args: func(path string) []string { return []string{path, "stdout"} },
	}
}

func (c *cliTool) ExtractText(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, c.bin, c.args(path)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "ocr: %s failed for %s: %s", c.name, path, stderr.String())
	}
	return stdout.String(), nil
}
