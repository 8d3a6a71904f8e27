package routes

import (
	"testing"

	"frontline-rating-server/models"
)

func activeQuestions(ids ...uint) []models.Question {
	out := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Question{ID: id, IsActive: true})
	}
	return out
}

func TestValidateResponses(t *testing.T) {
	questions := activeQuestions(1, 2, 3)

	cases := []struct {
		name      string
		responses []models.ResponseInput
		wantOK    bool
	}{
		{
			"full valid submission",
			[]models.ResponseInput{{QuestionID: 1, Score: 5}, {QuestionID: 2, Score: 3}, {QuestionID: 3, Score: 1}},
			true,
		},
		{
			"empty responses",
			nil,
			false,
		},
		{
			"score above range",
			[]models.ResponseInput{{QuestionID: 1, Score: 6}, {QuestionID: 2, Score: 3}, {QuestionID: 3, Score: 1}},
			false,
		},
		{
			"score below range",
			[]models.ResponseInput{{QuestionID: 1, Score: 0}, {QuestionID: 2, Score: 3}, {QuestionID: 3, Score: 1}},
			false,
		},
		{
			"unknown question",
			[]models.ResponseInput{{QuestionID: 1, Score: 5}, {QuestionID: 2, Score: 3}, {QuestionID: 99, Score: 1}},
			false,
		},
		{
			"duplicate question",
			[]models.ResponseInput{{QuestionID: 1, Score: 5}, {QuestionID: 1, Score: 3}, {QuestionID: 2, Score: 1}},
			false,
		},
		{
			"missing a question",
			[]models.ResponseInput{{QuestionID: 1, Score: 5}, {QuestionID: 2, Score: 3}},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, ok := validateResponses(tc.responses, questions)
			if ok != tc.wantOK {
				t.Errorf("validateResponses() ok = %v, want %v (msg: %q)", ok, tc.wantOK, msg)
			}
			if !ok && msg == "" {
				t.Error("invalid submissions must carry a caller-facing message")
			}
		})
	}
}

func TestValidateResponsesNoActiveQuestions(t *testing.T) {
	// A department with no active questions cannot accept any submission.
	msg, ok := validateResponses([]models.ResponseInput{{QuestionID: 1, Score: 5}}, nil)
	if ok {
		t.Errorf("expected rejection, got ok (msg: %q)", msg)
	}
}
