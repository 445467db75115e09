package models

// Question kinds. The prompt asks for the dynasty, the city, or the
// year of a dataset item.
const (
	KindEventDynasty  = "event-dynasty"
	KindEventLocation = "event-location"
	KindEventYear     = "event-year"
)

// QuizQuestion is the active question, persisted under
// "current_question" and regenerated when accessed on a new day.
type QuizQuestion struct {
	Kind        string   `json:"type"`
	Question    string   `json:"question"`
	Correct     string   `json:"correct"`
	Options     []string `json:"options"`
	Explanation string   `json:"explanation"`
	Item        ItemRef  `json:"item"`
	Date        string   `json:"date"`
}

// ItemRef points back at the dataset item a question was built from.
type ItemRef struct {
	City  string `json:"city"`
	Title string `json:"title"`
}

// AnswerRecord is one entry of the historical answer log.
type AnswerRecord struct {
	Date     string `json:"date"`
	Kind     string `json:"type"`
	Question string `json:"question"`
	Selected string `json:"selected"`
	Correct  bool   `json:"correct"`
}

// QuizStats is the persisted "quiz_data" record.
type QuizStats struct {
	LastQuizDate        string         `json:"lastQuizDate,omitempty"`
	TotalQuestions      int            `json:"totalQuestions"`
	CorrectAnswers      int            `json:"correctAnswers"`
	ConsecutiveDays     int            `json:"consecutiveDays"`
	LastConsecutiveDate string         `json:"lastConsecutiveDate,omitempty"`
	Answers             []AnswerRecord `json:"answers"`
}

func NewQuizStats() *QuizStats {
	return &QuizStats{Answers: []AnswerRecord{}}
}

// ── Request/Response Types ────────────────────────────────

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	PointsAwarded int    `json:"points_awarded"`
}

type QuizStatsSummary struct {
	TotalQuestions  int `json:"total_questions"`
	CorrectAnswers  int `json:"correct_answers"`
	Accuracy        int `json:"accuracy"`
	ConsecutiveDays int `json:"consecutive_days"`
}
