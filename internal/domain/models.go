package domain

import "time"

// Letter is the DISC dimension an option maps to.
type Letter string

const (
	LetterD Letter = "D"
	LetterI Letter = "I"
	LetterS Letter = "S"
	LetterC Letter = "C"
)

// Category is the display name of a DISC dimension.
type Category string

const (
	Dominance         Category = "Dominância"
	Influence         Category = "Influência"
	Steadiness        Category = "Estabilidade"
	Conscientiousness Category = "Conformidade"
)

// Categories lists every category in presentation order.
var Categories = []Category{Dominance, Influence, Steadiness, Conscientiousness}

// CategoryOf maps a letter to its category. ok is false for letters outside D, I, S, C.
func CategoryOf(l Letter) (Category, bool) {
	switch l {
	case LetterD:
		return Dominance, true
	case LetterI:
		return Influence, true
	case LetterS:
		return Steadiness, true
	case LetterC:
		return Conscientiousness, true
	}
	return "", false
}

// Distribution holds the percentage per category, rounded to two decimals.
type Distribution struct {
	Dominance         float64 `json:"dominancia"`
	Influence         float64 `json:"influencia"`
	Steadiness        float64 `json:"estabilidade"`
	Conscientiousness float64 `json:"conformidade"`
}

// Get returns the percentage of a category.
func (d Distribution) Get(c Category) float64 {
	switch c {
	case Dominance:
		return d.Dominance
	case Influence:
		return d.Influence
	case Steadiness:
		return d.Steadiness
	case Conscientiousness:
		return d.Conscientiousness
	}
	return 0
}

// Set overwrites the percentage of a category. Unknown categories are ignored.
func (d *Distribution) Set(c Category, v float64) {
	switch c {
	case Dominance:
		d.Dominance = v
	case Influence:
		d.Influence = v
	case Steadiness:
		d.Steadiness = v
	case Conscientiousness:
		d.Conscientiousness = v
	}
}

// DistributionEntry is one row of a rendered distribution.
type DistributionEntry struct {
	Category Category `json:"category"`
	Percent  float64  `json:"percent"`
}

// Entries returns the distribution in presentation order.
func (d Distribution) Entries() []DistributionEntry {
	entries := make([]DistributionEntry, 0, len(Categories))
	for _, c := range Categories {
		entries = append(entries, DistributionEntry{Category: c, Percent: d.Get(c)})
	}
	return entries
}

// Total sums the four percentages.
func (d Distribution) Total() float64 {
	return d.Dominance + d.Influence + d.Steadiness + d.Conscientiousness
}

// Option is a selectable answer. Letter is carried explicitly; Label is display text only.
type Option struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Letter Letter `json:"letter"`
}

// Question is a single-choice DISC question.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Option looks up an option by id.
func (q Question) Option(optionID string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return Option{}, false
}

// Questionnaire is the ordered question set presented to a user.
type Questionnaire struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question looks up a question by id.
func (q Questionnaire) Question(questionID string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == questionID {
			return question, true
		}
	}
	return Question{}, false
}

// StoredResult is a persisted, scored submission.
type StoredResult struct {
	ID           int64        `json:"id"`
	Code         string       `json:"accessCode"`
	Distribution Distribution `json:"distribution"`
}

// Submission is the outcome of a completed quiz session.
type Submission struct {
	SessionID   string       `json:"sessionId"`
	Result      StoredResult `json:"result"`
	SubmittedAt time.Time    `json:"submittedAt"`
}
