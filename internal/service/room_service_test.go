package service

import (
	"strings"
	"testing"
)

func mcq(difficulty, prompt, answer string, options ...string) QuestionInput {
	return QuestionInput{
		Type:          "MCQ",
		Difficulty:    difficulty,
		Question:      prompt,
		Options:       options,
		CorrectAnswer: answer,
	}
}

func trueFalse(difficulty, prompt, answer string) QuestionInput {
	return QuestionInput{
		Type:          "TRUE_FALSE",
		Difficulty:    difficulty,
		Question:      prompt,
		CorrectAnswer: answer,
	}
}

func TestValidateQuestionInput(t *testing.T) {
	tests := []struct {
		name    string
		input   QuestionInput
		wantErr string
	}{
		{
			name:  "valid MCQ",
			input: mcq("Easy", "2+2?", "4", "3", "4", "5", "6"),
		},
		{
			name:  "valid true/false",
			input: trueFalse("Hard", "Go has generics.", "True"),
		},
		{
			name:    "unknown type",
			input:   QuestionInput{Type: "ESSAY", Difficulty: "Easy", Question: "Discuss.", CorrectAnswer: "n/a"},
			wantErr: "invalid question type",
		},
		{
			name:    "unknown difficulty",
			input:   mcq("Extreme", "2+2?", "4", "3", "4", "5", "6"),
			wantErr: "invalid difficulty",
		},
		{
			name:    "blank question text",
			input:   mcq("Easy", "   ", "4", "3", "4", "5", "6"),
			wantErr: "question text is required",
		},
		{
			name:    "MCQ with three options",
			input:   mcq("Easy", "2+2?", "4", "3", "4", "5"),
			wantErr: "exactly 4 options",
		},
		{
			name:    "MCQ answer outside options",
			input:   mcq("Easy", "2+2?", "7", "3", "4", "5", "6"),
			wantErr: "one of the options",
		},
		{
			name:  "MCQ answer matches with surrounding spaces",
			input: mcq("Easy", "2+2?", " 4 ", "3", "4", "5", "6"),
		},
		{
			name: "true/false with options",
			input: QuestionInput{
				Type: "TRUE_FALSE", Difficulty: "Easy", Question: "Is it?",
				Options: []string{"True", "False"}, CorrectAnswer: "True",
			},
			wantErr: "must not have options",
		},
		{
			name:    "true/false with lowercase answer",
			input:   trueFalse("Easy", "Is it?", "true"),
			wantErr: `"True" or "False"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestionInput(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateCreateRoomInput(t *testing.T) {
	validQuestions := func(n int) []QuestionInput {
		qs := make([]QuestionInput, 0, n)
		for i := 0; i < n; i++ {
			qs = append(qs, trueFalse("Easy", "Statement holds.", "True"))
		}
		return qs
	}

	t.Run("valid", func(t *testing.T) {
		input := CreateRoomInput{
			RoomName:  "Networking basics",
			Category:  "Tech",
			Questions: validQuestions(5),
		}
		if err := validateCreateRoomInput(input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("too few questions", func(t *testing.T) {
		input := CreateRoomInput{
			RoomName:  "Networking basics",
			Category:  "Tech",
			Questions: validQuestions(4),
		}
		err := validateCreateRoomInput(input)
		if err == nil || !strings.Contains(err.Error(), "at least 5") {
			t.Fatalf("expected a question-count error, got %v", err)
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		input := CreateRoomInput{
			RoomName:  "Networking basics",
			Category:  "Cooking",
			Questions: validQuestions(5),
		}
		if err := validateCreateRoomInput(input); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("bad question reported with its index", func(t *testing.T) {
		qs := validQuestions(5)
		qs[2] = mcq("Easy", "2+2?", "7", "3", "4", "5", "6")
		input := CreateRoomInput{
			RoomName:  "Networking basics",
			Category:  "Tech",
			Questions: qs,
		}
		err := validateCreateRoomInput(input)
		if err == nil || !strings.Contains(err.Error(), "question 3") {
			t.Fatalf("expected error naming question 3, got %v", err)
		}
	})
}
