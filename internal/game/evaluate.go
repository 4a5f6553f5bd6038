package game

import (
	"fmt"
	"strings"
)

// Evaluate judges value against r. It has no side effects; the session
// applies ScoreDelta and gates repeated or early submissions.
func Evaluate(r Round, value int, text FeedbackText) Evaluation {
	if value == r.Answer {
		return Evaluation{
			Correct:    true,
			ScoreDelta: PointsPerCorrect,
			Feedback:   FeedbackCorrect,
			Message:    text.Correct,
		}
	}
	msg := text.Incorrect
	if strings.Contains(msg, "%d") {
		msg = fmt.Sprintf(msg, r.Answer)
	}
	return Evaluation{Feedback: FeedbackIncorrect, Message: msg}
}
