// Package file загружает корпус вопросов из файлов каталога данных (JSON и XLSX).
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// schemaFileName — служебный файл схемы, лежащий рядом с корпусом
const schemaFileName = "firestore-schema.json"

// CategoryRule назначает категорию вопросам из файлов, в имени которых есть Contains
type CategoryRule struct {
	Contains string
	Category string
}

// QuestionLoader читает вопросы из *.json и *.xlsx в DataDir.
// Ошибки отдельных файлов и записей логируются и не прерывают загрузку.
type QuestionLoader struct {
	dataDir         string
	defaultCategory string
	rules           []CategoryRule
}

// NewQuestionLoader создает загрузчик корпуса
func NewQuestionLoader(dataDir, defaultCategory string, rules []CategoryRule) *QuestionLoader {
	return &QuestionLoader{
		dataDir:         dataDir,
		defaultCategory: defaultCategory,
		rules:           rules,
	}
}

// LoadAll реализует repository.QuestionSource.
// Отсутствующий каталог даёт пустой корпус без ошибки.
func (l *QuestionLoader) LoadAll(ctx context.Context) ([]entity.Question, error) {
	result := make([]entity.Question, 0)
	if l.dataDir == "" {
		return result, nil
	}

	entries, err := os.ReadDir(l.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read data dir %s: %w", l.dataDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(l.dataDir, name)

		var loaded []entity.Question
		switch strings.ToLower(filepath.Ext(name)) {
		case ".json":
			if name == schemaFileName {
				continue
			}
			loaded, err = l.loadJSON(path)
		case ".xlsx":
			loaded, err = l.loadXLSX(path)
		default:
			continue
		}
		if err != nil {
			log.Printf("[QuestionLoader] WARNING: не удалось прочитать %s: %v", name, err)
			continue
		}
		result = append(result, loaded...)
	}

	log.Printf("[QuestionLoader] Загружено %d вопросов из %s", len(result), l.dataDir)
	return result, nil
}

// categoryFor возвращает категорию по имени файла
func (l *QuestionLoader) categoryFor(fileName string) string {
	for _, r := range l.rules {
		if r.Contains != "" && strings.Contains(fileName, r.Contains) {
			return r.Category
		}
	}
	return l.defaultCategory
}

// rawQuestion — запись вопроса в JSON-файле корпуса
type rawQuestion struct {
	ID          json.RawMessage `json:"id"`
	Category    string          `json:"category"`
	Question    string          `json:"question"`
	Options     []string        `json:"options"`
	Choices     []string        `json:"choices"`
	Answer      json.RawMessage `json:"answer"`
	Explanation *string         `json:"explanation"`
}

func (l *QuestionLoader) loadJSON(path string) ([]entity.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		// Файлы, где верхний уровень не массив, не являются корпусом
		log.Printf("[QuestionLoader] Пропущен %s: ожидался JSON-массив", filepath.Base(path))
		return nil, nil
	}

	fileName := filepath.Base(path)
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	questions := make([]entity.Question, 0, len(items))

	for i, item := range items {
		var raw rawQuestion
		if err := json.Unmarshal(item, &raw); err != nil {
			log.Printf("[QuestionLoader] WARNING: пропущена запись %d в %s: %v", i+1, fileName, err)
			continue
		}

		options := raw.Options
		if len(options) == 0 {
			options = raw.Choices
		}

		answer, err := resolveAnswer(raw.Answer, options)
		if err != nil {
			log.Printf("[QuestionLoader] WARNING: пропущена запись %d в %s: %v", i+1, fileName, err)
			continue
		}

		q := entity.Question{
			ID:          rawID(raw.ID, fmt.Sprintf("%s_%d", stem, i+1)),
			Category:    raw.Category,
			Text:        raw.Question,
			Options:     entity.StringArray(options),
			Answer:      answer,
			Explanation: raw.Explanation,
		}
		if q.Category == "" {
			q.Category = l.categoryFor(fileName)
		}
		if err := q.Validate(); err != nil {
			log.Printf("[QuestionLoader] WARNING: пропущена запись %d в %s: %v", i+1, fileName, err)
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// rawID возвращает id записи как строку или fallback, если id пустой
func rawID(raw json.RawMessage, fallback string) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" || string(raw) == `""` || string(raw) == "0" || string(raw) == "false" {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// resolveAnswer переводит поле answer в 0-based индекс.
// Строка ищется среди вариантов (не найдена → 0), число считается 1-based.
func resolveAnswer(raw json.RawMessage, options []string) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return answerFromText(text, options), nil
	}

	// true считается единицей, false — нулём: оба дают индекс 0
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return 0, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("unsupported answer value %s", string(raw))
	}
	return oneBasedIndex(int(n)), nil
}

func answerFromText(text string, options []string) int {
	for i, opt := range options {
		if opt == text {
			return i
		}
	}
	return 0
}

func oneBasedIndex(n int) int {
	return max(0, n-1)
}

// parseAnswerCell разбирает ячейку answer из XLSX: число — 1-based, иначе текст варианта
func parseAnswerCell(cell string, options []string) int {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return oneBasedIndex(n)
	}
	return answerFromText(cell, options)
}
