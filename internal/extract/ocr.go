package extract

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements TextRecognizer using the gosseract binding. Each call
// uses a fresh client; gosseract clients are not safe for concurrent use.
type Tesseract struct {
	Languages []string
}

// Recognize runs tesseract over the image bytes and returns the recognized
// text, which may legitimately be empty.
func (t Tesseract) Recognize(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(t.Languages) > 0 {
		if err := client.SetLanguage(t.Languages...); err != nil {
			return "", fmt.Errorf("set ocr language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
