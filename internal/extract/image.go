package extract

import "errors"

// imageExtractor runs OCR over image bytes. Empty recognized text is valid
// output; the generic empty-result rule in Service reports it.
type imageExtractor struct {
	recognizer TextRecognizer
}

func (e imageExtractor) Extract(data []byte) (string, error) {
	if e.recognizer == nil {
		return "", errors.New("ocr is not enabled")
	}
	return e.recognizer.Recognize(data)
}
