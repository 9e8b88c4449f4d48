package service

import "backend/internal/models"

// maxAnswerNoteLen bounds the free-text note stored per answer.
const maxAnswerNoteLen = 2000

// ScoreAnswers computes the stored answer set and total score from the
// question catalog. Scores come exclusively from the catalog's options: an
// answer naming an unknown option (or no option) scores zero, and answer
// keys outside the catalog are dropped entirely.
func ScoreAnswers(questions []models.UjiAksesQuestion, submitted map[string]models.SubmittedAnswer) (models.AnswerMap, int) {
	scored := make(models.AnswerMap, len(questions))
	total := 0

	for _, q := range questions {
		raw := submitted[q.Key]

		score := 0
		for _, opt := range q.Options {
			if opt.Key == raw.OptionKey {
				score = opt.Score
				break
			}
		}

		note := raw.Note
		if len(note) > maxAnswerNoteLen {
			note = note[:maxAnswerNoteLen]
		}

		scored[q.Key] = models.ScoredAnswer{
			OptionKey: raw.OptionKey,
			Score:     score,
			Note:      note,
		}
		total += score
	}

	return scored, total
}

// MissingAnswers lists question keys without a chosen option. A submitted
// report must answer every question; drafts may leave gaps.
func MissingAnswers(questions []models.UjiAksesQuestion, answers models.AnswerMap) []string {
	missing := []string{}
	for _, q := range questions {
		if answers[q.Key].OptionKey == "" {
			missing = append(missing, q.Key)
		}
	}
	return missing
}
