package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/studydeckapp/studydeck-server/internal/errors"
	"github.com/studydeckapp/studydeck-server/internal/validation"
)

type cardRequest struct {
	Question   string `json:"question" validate:"required,max=2000"`
	Answer     string `json:"answer" validate:"required,max=2000"`
	Subject    string `json:"subject" validate:"required,subject"`
	Difficulty string `json:"difficulty" validate:"omitempty,difficulty"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := cardRequest{
		Question:   "What is Ohm's law?",
		Answer:     "V = IR",
		Subject:    "Physics",
		Difficulty: "medium",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       cardRequest
		wantField string
	}{
		{
			name:      "missing question",
			req:       cardRequest{Answer: "V = IR", Subject: "Physics"},
			wantField: "question",
		},
		{
			name:      "missing answer",
			req:       cardRequest{Question: "What is Ohm's law?", Subject: "Physics"},
			wantField: "answer",
		},
		{
			name:      "unknown subject",
			req:       cardRequest{Question: "q", Answer: "a", Subject: "Alchemy"},
			wantField: "subject",
		},
		{
			name:      "bad difficulty",
			req:       cardRequest{Question: "q", Answer: "a", Subject: "Physics", Difficulty: "brutal"},
			wantField: "difficulty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			fields, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidator_SubjectSlugAccepted(t *testing.T) {
	v := validation.New()

	req := cardRequest{
		Question: "What is the capital of France?",
		Answer:   "Paris",
		Subject:  "geography",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(cardRequest{Answer: "a", Subject: "Physics"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)

	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "question")
	assert.NotContains(t, fields, "Question")
}
