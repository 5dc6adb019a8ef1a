package service

import "github.com/skolara/skolara-api/internal/models"

// AutoScore computes the initial score for a single answer at submission
// time. It is pure and side-effect-free; a teacher override later
// supersedes whatever it returns.
//
// Choice questions score full points when the selected option is the one
// flagged correct. A question whose option data is ambiguous (zero or more
// than one correct flag) is unanswerable and scores zero rather than
// guessing; the second return value reports that integrity fault so the
// caller can log it. Short-answer questions always score zero here because
// free text is only ever judged by a teacher.
func AutoScore(question models.Question, selectedOptionID *uint) (isCorrect bool, points int, fault error) {
	if !question.IsChoice() {
		return false, 0, nil
	}

	if selectedOptionID == nil {
		return false, 0, nil
	}

	correct, err := question.CorrectOption()
	if err != nil {
		return false, 0, err
	}

	if *selectedOptionID == correct.ID {
		return true, question.Points, nil
	}

	return false, 0, nil
}
