package file

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// loadXLSX читает первый лист книги. Первая строка — заголовки:
// id, category, question, answer, explanation и колонки вариантов option*/choice* по порядку.
func (l *QuestionLoader) loadXLSX(path string) ([]entity.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	columns := make(map[string]int)
	var optionCols []int
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.HasPrefix(name, "option"), strings.HasPrefix(name, "choice"):
			optionCols = append(optionCols, i)
		case name != "":
			columns[name] = i
		}
	}
	if _, ok := columns["question"]; !ok {
		return nil, fmt.Errorf("missing 'question' header")
	}

	fileName := filepath.Base(path)
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	questions := make([]entity.Question, 0, len(rows)-1)
	for i, row := range rows[1:] {
		options := make([]string, 0, len(optionCols))
		for _, col := range optionCols {
			if col < len(row) && strings.TrimSpace(row[col]) != "" {
				options = append(options, strings.TrimSpace(row[col]))
			}
		}

		q := entity.Question{
			ID:       cell(row, "id"),
			Category: cell(row, "category"),
			Text:     cell(row, "question"),
			Options:  entity.StringArray(options),
			Answer:   parseAnswerCell(cell(row, "answer"), options),
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("%s_%d", stem, i+1)
		}
		if q.Category == "" {
			q.Category = l.categoryFor(fileName)
		}
		if explanation := cell(row, "explanation"); explanation != "" {
			q.Explanation = &explanation
		}
		if err := q.Validate(); err != nil {
			log.Printf("[QuestionLoader] WARNING: пропущена строка %d в %s: %v", i+2, fileName, err)
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}
