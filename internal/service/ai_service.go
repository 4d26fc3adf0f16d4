package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quizroom_backend/internal/config"
	"quizroom_backend/internal/model"
	"quizroom_backend/internal/util"
)

type AIService struct {
	config     config.AIConfig
	httpClient *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config:     cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *AIService) IsAvailable() bool {
	return s.config.APIKey != ""
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type GenerateQuestionsInput struct {
	Topic        string   `json:"topic" binding:"required"`
	Description  string   `json:"description"`
	Difficulties []string `json:"difficulties"`
}

const generateSystemPrompt = `You are a quiz question generator. Respond with ONLY a valid JSON array (no markdown, no code fences, no explanations). Each element must have this shape:

{
  "type": "MCQ" or "TRUE_FALSE",
  "difficulty": "Easy" or "Medium" or "Hard",
  "question": "Question text?",
  "options": ["A", "B", "C", "D"],
  "correctAnswer": "A"
}

Rules:
- Generate between 6 and 10 questions on the requested topic
- MCQ questions must have exactly 4 options and correctAnswer must be one of them
- TRUE_FALSE questions must have an empty options array and correctAnswer "True" or "False"
- Only use the difficulties the user asks for
- Questions must be factually accurate and unambiguous
- Return ONLY the JSON array, nothing else`

// Generate 调 OpenAI 兼容接口生成题目，输出经过清洗和逐题校验，
// 格式不合法直接报错，不做重试
func (s *AIService) Generate(input GenerateQuestionsInput) ([]QuestionInput, error) {
	if !s.IsAvailable() {
		return nil, util.ErrAIUnavailable
	}

	difficulties := input.Difficulties
	if len(difficulties) == 0 {
		difficulties = []string{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
	}
	for _, d := range difficulties {
		if !model.IsValidDifficulty(d) {
			return nil, fmt.Errorf("invalid difficulty %q", d)
		}
	}

	userPrompt := fmt.Sprintf("Topic: %s\nDifficulties: %s",
		strings.TrimSpace(input.Topic), strings.Join(difficulties, ", "))
	if strings.TrimSpace(input.Description) != "" {
		userPrompt += "\nDescription: " + strings.TrimSpace(input.Description)
	}

	content, err := s.chatCompletion([]AIChatMessage{
		{Role: "system", Content: generateSystemPrompt},
		{Role: "user", Content: userPrompt},
	})
	if err != nil {
		return nil, err
	}

	return ParseGeneratedQuestions(content)
}

func (s *AIService) chatCompletion(messages []AIChatMessage) (string, error) {
	reqBody := chatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("AI API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from AI")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// ParseGeneratedQuestions 清洗模型输出并逐题校验
func ParseGeneratedQuestions(content string) ([]QuestionInput, error) {
	cleaned := extractJSONArray(content)
	if cleaned == "" {
		return nil, fmt.Errorf("AI response contains no JSON array")
	}

	var questions []QuestionInput
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("AI returned invalid JSON: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("AI returned no questions")
	}

	for i, q := range questions {
		if err := ValidateQuestionInput(q); err != nil {
			return nil, fmt.Errorf("AI question %d is invalid: %w", i+1, err)
		}
	}
	return questions, nil
}

// extractJSONArray 去掉围栏后截取最外层的 JSON 数组
func extractJSONArray(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return content[start : end+1]
}
