package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxExtractor renders every sheet of a workbook as a text dump in the same
// row format as the CSV extractor. A sheet that fails to read degrades to
// whatever rows were already rendered.
type xlsxExtractor struct{}

func (xlsxExtractor) Extract(data []byte) (string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	var lines []string
	sheets := workbook.GetSheetList()
	for _, sheet := range sheets {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			continue
		}
		if len(sheets) > 1 {
			lines = append(lines, fmt.Sprintf("[sheet: %s]", sheet))
		}
		for _, row := range rows {
			lines = append(lines, renderRow(row))
		}
	}
	return strings.Join(lines, "\n"), nil
}
