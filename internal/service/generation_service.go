package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Quokkas/config"
	"github.com/lshigami/Quokkas/internal/extract"
	"github.com/lshigami/Quokkas/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GenerationError wraps any failure of the external generation call: missing
// credentials, API errors, malformed or empty responses. Never retried.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quiz generation failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("quiz generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// GeneratedQuiz is the validated output of one generation call.
type GeneratedQuiz struct {
	Title     string
	Questions []model.Question
}

// QuizGenerationService turns normalized document content into a titled
// question sequence. One call, one success or one failure.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, content extract.NormalizedContent, questionCount int, difficulty string) (*GeneratedQuiz, error)
}

type geminiGenerationService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewQuizGenerationService(cfg *config.Config) (QuizGenerationService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. QuizGenerationService will be non-functional.")
		return &geminiGenerationService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	m := client.GenerativeModel(cfg.GeminiModel)
	m.ResponseMIMEType = "application/json"
	return &geminiGenerationService{client: m, cfg: cfg}, nil
}

// generatedPayload mirrors the JSON shape the prompt demands from the model.
type generatedPayload struct {
	Title     string `json:"title"`
	Questions []struct {
		Type          string   `json:"type"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
		Explanation   string   `json:"explanation"`
	} `json:"questions"`
}

func buildQuizPrompt(questionCount int, difficulty string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert quiz author. Based on the provided document content, ")
	sb.WriteString(fmt.Sprintf("generate exactly %d quiz questions at %s difficulty.\n\n", questionCount, difficulty))
	sb.WriteString("Requirements:\n")
	sb.WriteString("1. Create a short descriptive title for the quiz reflecting the document's subject matter.\n")
	sb.WriteString("2. Mix question types across MULTIPLE_CHOICE, TRUE_FALSE and SHORT_ANSWER.\n")
	sb.WriteString("3. MULTIPLE_CHOICE questions must have exactly 4 options, and correct_answer must match one option verbatim.\n")
	sb.WriteString("4. TRUE_FALSE questions must have correct_answer of exactly \"True\" or \"False\" and no options.\n")
	sb.WriteString("5. SHORT_ANSWER questions must have a concise one-or-two-word correct_answer and no options.\n")
	sb.WriteString("6. Every question needs an explanation of why the correct answer is correct.\n\n")
	sb.WriteString(`Format your response as a JSON object with this structure:
{
  "title": "Quiz Title",
  "questions": [
    {
      "type": "MULTIPLE_CHOICE",
      "question": "Question text?",
      "options": ["A", "B", "C", "D"],
      "correct_answer": "B",
      "explanation": "Why B is correct."
    }
  ]
}
`)
	return sb.String()
}

func (s *geminiGenerationService) GenerateQuiz(ctx context.Context, content extract.NormalizedContent, questionCount int, difficulty string) (*GeneratedQuiz, error) {
	if s.client == nil {
		return nil, &GenerationError{Message: "Gemini client not initialized (missing GEMINI_API_KEY)"}
	}
	if questionCount < 1 {
		return nil, &GenerationError{Message: fmt.Sprintf("question count must be at least 1, got %d", questionCount)}
	}

	var parts []genai.Part
	switch content.Kind {
	case extract.KindImage:
		raw, err := base64.StdEncoding.DecodeString(content.Data)
		if err != nil {
			return nil, &GenerationError{Message: "invalid base64 image payload", Err: err}
		}
		mimeFormat := strings.TrimPrefix(content.MimeType, "image/")
		parts = append(parts, genai.ImageData(mimeFormat, raw))
		parts = append(parts, genai.Text(buildQuizPrompt(questionCount, difficulty)+"\nThe document is the image provided above."))
	default:
		parts = append(parts, genai.Text(buildQuizPrompt(questionCount, difficulty)+"\nDocument content:\n---\n"+content.Text+"\n---\n"))
	}

	resp, err := s.client.GenerateContent(ctx, parts...)
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during quiz generation")
		return nil, &GenerationError{Message: "Gemini API error", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &GenerationError{Message: "Gemini returned an empty response"}
	}

	raw := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw += string(txt)
		}
	}
	if raw == "" {
		return nil, &GenerationError{Message: "Gemini returned no text content"}
	}

	var payload generatedPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse Gemini quiz response")
		return nil, &GenerationError{Message: "malformed generation response", Err: err}
	}

	return validateGeneratedPayload(&payload)
}

// validateGeneratedPayload enforces the generation contract before anything is
// stored: valid types, non-empty prompts and answer keys, and for multiple
// choice the options must contain the correct answer verbatim.
func validateGeneratedPayload(payload *generatedPayload) (*GeneratedQuiz, error) {
	if len(payload.Questions) == 0 {
		return nil, &GenerationError{Message: "generation response contains no questions"}
	}
	if strings.TrimSpace(payload.Title) == "" {
		payload.Title = "Generated Quiz"
	}

	questions := make([]model.Question, 0, len(payload.Questions))
	for i, q := range payload.Questions {
		qType := model.QuestionType(q.Type)
		if !qType.Valid() {
			return nil, &GenerationError{Message: fmt.Sprintf("question %d has unknown type %q", i+1, q.Type)}
		}
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.CorrectAnswer) == "" {
			return nil, &GenerationError{Message: fmt.Sprintf("question %d is missing its prompt or answer key", i+1)}
		}

		options := q.Options
		if qType == model.QuestionTypeMultipleChoice {
			if len(options) == 0 {
				return nil, &GenerationError{Message: fmt.Sprintf("multiple-choice question %d has no options", i+1)}
			}
			found := false
			for _, opt := range options {
				if opt == q.CorrectAnswer {
					found = true
					break
				}
			}
			if !found {
				return nil, &GenerationError{Message: fmt.Sprintf("multiple-choice question %d: options do not contain the correct answer", i+1)}
			}
		} else {
			options = nil
		}

		questions = append(questions, model.Question{
			Type:          qType,
			Prompt:        q.Question,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			OrderInQuiz:   i + 1,
		})
	}

	return &GeneratedQuiz{Title: payload.Title, Questions: questions}, nil
}
