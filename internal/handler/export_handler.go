package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-srs/internal/middleware"
	"github.com/yourusername/quiz-srs/internal/service"
)

// ExportHandler выгружает историю ответов пользователя
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler создает обработчик выгрузки
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

var exportHeaders = []string{"Время ответа", "ID вопроса", "Категория", "Вопрос", "Выбор", "Правильный вариант", "Верно", "Время (мс)"}

// ExportAnswers выгружает историю ответов в CSV или XLSX
// GET /api/v1/stats/export?userId=&format=csv|xlsx
func (h *ExportHandler) ExportAnswers(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
		return
	}

	rows, err := h.exportService.AnswerHistory(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, "ExportHandler", err)
		return
	}

	filename := fmt.Sprintf("answers_%s_%s", sanitizeFilename(userID), time.Now().Format("2006-01-02"))
	switch format {
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		h.exportCSV(c, rows, filename)
	}
}

func exportRecord(r service.AnswerExportRow) []string {
	correct := "Нет"
	if r.Correct {
		correct = "Да"
	}
	answer := ""
	if r.Answer >= 0 {
		answer = strconv.Itoa(r.Answer)
	}
	return []string{
		r.AnsweredAt.UTC().Format(time.RFC3339),
		sanitizeForExcel(r.QuestionID),
		sanitizeForExcel(r.Category),
		sanitizeForExcel(r.Question),
		strconv.Itoa(r.Choice),
		answer,
		correct,
		strconv.FormatInt(r.ElapsedMs, 10),
	}
}

// exportCSV экспортирует ответы в CSV с правильным экранированием спецсимволов
func (h *ExportHandler) exportCSV(c *gin.Context, rows []service.AnswerExportRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write(exportRecord(r))
	}
}

// exportXLSX экспортирует ответы в Excel через StreamWriter
func (h *ExportHandler) exportXLSX(c *gin.Context, rows []service.AnswerExportRow, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Ответы"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ExportHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, name := range exportHeaders {
		headers[i] = name
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ExportHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		record := exportRecord(r)
		row := make([]interface{}, len(record))
		for j, v := range record {
			row[j] = v
		}
		// Числовые колонки пишем числами
		row[4] = r.Choice
		row[7] = r.ElapsedMs
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ExportHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ExportHandler] Ошибка при Flush: %v", err)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ExportHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// sanitizeFilename оставляет в имени файла только безопасные символы
func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
