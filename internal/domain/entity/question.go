package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/yourusername/quiz-srs/internal/pkg/errors"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		// SQLite отдаёт TEXT-колонки строкой
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte or string")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос из корпуса. Ядро планировщика вопросы только читает.
type Question struct {
	ID          string      `gorm:"primaryKey;size:191" json:"id"`
	Category    string      `gorm:"size:255;not null;default:'';index" json:"category"`
	Text        string      `gorm:"column:question;type:text;not null" json:"question"`
	Options     StringArray `gorm:"type:jsonb;not null" json:"options"`
	Answer      int         `gorm:"not null;default:0" json:"answer"` // Индекс правильного варианта (0-based)
	Explanation *string     `gorm:"type:text" json:"explanation,omitempty"`
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.Answer
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}

// Validate проверяет, что запись вопроса пригодна для выдачи пользователю.
// Возвращает ошибку, обёрнутую в ErrMalformedRecord.
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: question id is empty", apperrors.ErrMalformedRecord)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: question %s has no options", apperrors.ErrMalformedRecord, q.ID)
	}
	if !q.IsValidOption(q.Answer) {
		return fmt.Errorf("%w: question %s answer index %d out of range [0,%d)",
			apperrors.ErrMalformedRecord, q.ID, q.Answer, len(q.Options))
	}
	return nil
}
