package ocr

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultVisionModel = "claude-haiku-4-5-20251001"

const visionPrompt = "Transcribe all text visible in this invoice image. " +
	"Return only the raw text, preserving line breaks. Do not summarize or annotate."

// Vision extracts text from invoice images via a vision model, used when
// local OCR produces nothing. Calls are rate limited.
type Vision struct {
	client  sdk.Client
	model   string
	limiter *rate.Limiter
}

// NewVision creates a Vision extractor. If model is empty the default is
// used; rps bounds the request rate (<=0 means 1/s).
func NewVision(apiKey, model string, rps float64) *Vision {
	if model == "" {
		model = defaultVisionModel
	}
	if rps <= 0 {
		rps = 1
	}
	return &Vision{
		client:  sdk.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// ExtractText uploads the image and returns the model's transcription.
func (v *Vision) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "ocr: vision rate limit wait")
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", eris.Wrapf(err, "ocr: read image %s", imagePath)
	}

	mediaType, err := imageMediaType(imagePath)
	if err != nil {
		return "", err
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	msg, err := v.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(v.model),
		MaxTokens: 4096,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(
				sdk.NewImageBlockBase64(mediaType, encoded),
				sdk.NewTextBlock(visionPrompt),
			),
		},
	})
	if err != nil {
		return "", eris.Wrapf(err, "ocr: vision transcribe %s", imagePath)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

func imageMediaType(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png", nil
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	default:
		return "", eris.Errorf("ocr: unsupported image type %s", path)
	}
}
