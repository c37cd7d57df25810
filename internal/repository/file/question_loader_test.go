package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testRules = []CategoryRule{{Contains: "passpo", Category: "ITパスポート"}}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadAll_JSONRules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "kihon.json", `[
		{"id": "k1", "question": "Q1", "options": ["a", "b", "c"], "answer": 2},
		{"question": "Q2", "choices": ["x", "y"], "answer": "y"},
		{"question": "Q3", "options": ["x", "y"], "answer": "z"},
		{"id": 7, "question": "Q4", "options": ["x", "y"], "answer": 0, "category": "custom"},
		{"question": "Q5", "options": ["x", "y"], "explanation": "because"}
	]`)

	loader := NewQuestionLoader(dir, "基本情報", testRules)
	questions, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 5)

	byID := make(map[string]int)
	for i, q := range questions {
		byID[q.ID] = i
	}

	k1 := questions[byID["k1"]]
	assert.Equal(t, 1, k1.Answer, "Числовой ответ 1-based")
	assert.Equal(t, "基本情報", k1.Category)

	q2 := questions[byID["kihon_2"]]
	assert.Equal(t, 1, q2.Answer, "Строковый ответ ищется среди вариантов")
	assert.Equal(t, []string{"x", "y"}, []string(q2.Options), "choices принимается вместо options")

	assert.Equal(t, 0, questions[byID["kihon_3"]].Answer, "Ненайденный строковый ответ — 0")

	q4 := questions[byID["7"]]
	assert.Equal(t, 0, q4.Answer, "max(0, n-1) для нулевого ответа")
	assert.Equal(t, "custom", q4.Category)

	q5 := questions[byID["kihon_5"]]
	require.NotNil(t, q5.Explanation)
	assert.Equal(t, "because", *q5.Explanation)
}

func TestLoadAll_SkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "passpo.json", `[
		{"question": "ok", "options": ["a", "b"], "answer": 1},
		{"question": "no options", "answer": 1},
		{"question": "out of range", "options": ["a", "b"], "answer": 5},
		"not an object",
		{"question": "bad answer", "options": ["a"], "answer": {"x": 1}}
	]`)
	writeFile(t, dir, "firestore-schema.json", `[{"question": "schema", "options": ["a"], "answer": 1}]`)
	writeFile(t, dir, "object.json", `{"question": "not a list"}`)
	writeFile(t, dir, "broken.json", `[{`)
	writeFile(t, dir, "notes.txt", "ignored")

	questions, err := NewQuestionLoader(dir, "基本情報", testRules).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "passpo_1", questions[0].ID)
	assert.Equal(t, "ITパスポート", questions[0].Category, "Категория по имени файла")
}

func TestLoadAll_MissingDir(t *testing.T) {
	questions, err := NewQuestionLoader(filepath.Join(t.TempDir(), "nope"), "基本情報", nil).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, questions)

	questions, err = NewQuestionLoader("", "基本情報", nil).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestLoadAll_XLSX(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	sheet := "Sheet1"
	rows := [][]interface{}{
		{"id", "question", "option1", "option2", "option3", "answer", "explanation"},
		{"x1", "Q1", "a", "b", "c", 3, "why"},
		{"", "Q2", "a", "b", "", "b", ""},
		{"x3", "Q3", "", "", "", 1, ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, "passpo_extra.xlsx")))
	require.NoError(t, f.Close())

	questions, err := NewQuestionLoader(dir, "基本情報", testRules).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 2, "Строка без вариантов пропускается")

	assert.Equal(t, "x1", questions[0].ID)
	assert.Equal(t, 2, questions[0].Answer)
	assert.Equal(t, []string{"a", "b", "c"}, []string(questions[0].Options))
	require.NotNil(t, questions[0].Explanation)
	assert.Equal(t, "ITパスポート", questions[0].Category)

	assert.Equal(t, "passpo_extra_2", questions[1].ID)
	assert.Equal(t, 1, questions[1].Answer)
	assert.Nil(t, questions[1].Explanation)
}

func TestLoadAll_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewQuestionLoader(dir, "基本情報", nil).LoadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
