package srs

import (
	"time"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// BucketKind — приоритетная корзина вопроса для пользователя
type BucketKind int

const (
	BucketDue    BucketKind = iota // Пора повторять
	BucketHard                     // Ошибка или ещё ни одного успешного повторения, срок не наступил
	BucketNew                      // Ни разу не отвечен
	BucketOthers                   // Выучен, срок не наступил
	bucketCount
)

// String возвращает имя корзины для логов
func (k BucketKind) String() string {
	switch k {
	case BucketDue:
		return "due"
	case BucketHard:
		return "hard"
	case BucketNew:
		return "new"
	case BucketOthers:
		return "others"
	default:
		return "unknown"
	}
}

// Buckets — разбиение корпуса на четыре непересекающиеся корзины.
// Внутри корзины сохраняется исходный порядок вопросов.
type Buckets struct {
	Due    []entity.Question
	Hard   []entity.Question
	New    []entity.Question
	Others []entity.Question
}

// Get возвращает корзину по её виду
func (b *Buckets) Get(kind BucketKind) []entity.Question {
	switch kind {
	case BucketDue:
		return b.Due
	case BucketHard:
		return b.Hard
	case BucketNew:
		return b.New
	case BucketOthers:
		return b.Others
	default:
		return nil
	}
}

// Len возвращает суммарное число вопросов во всех корзинах
func (b *Buckets) Len() int {
	return len(b.Due) + len(b.Hard) + len(b.New) + len(b.Others)
}

// Classify раскладывает вопросы по корзинам относительно истории пользователя.
// Входные данные не изменяются.
func Classify(questions []entity.Question, states map[string]entity.SchedulingState, now time.Time) Buckets {
	var b Buckets
	for _, q := range questions {
		s, ok := states[q.ID]
		switch {
		case !ok:
			b.New = append(b.New, q)
		case s.IsDue(now):
			// Наступивший срок важнее всего остального, даже свежей ошибки
			b.Due = append(b.Due, q)
		case s.Repetitions == 0:
			b.Hard = append(b.Hard, q)
		default:
			b.Others = append(b.Others, q)
		}
	}
	return b
}
