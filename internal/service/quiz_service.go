package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Quokkas/internal/dto"
	"github.com/lshigami/Quokkas/internal/extract"
	"github.com/lshigami/Quokkas/internal/model"
	"github.com/lshigami/Quokkas/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuizService owns the upload-to-quiz pipeline and the quiz library.
type QuizService interface {
	GenerateFromUpload(ctx context.Context, filename, mediaType string, data []byte, req dto.GenerateQuizRequest) (*dto.QuizResponseDTO, error)
	GetAllQuizzes() ([]dto.QuizSummaryDTO, error)
	GetQuizDetails(quizID uint) (*dto.QuizResponseDTO, error)
	DeleteQuiz(quizID uint) error
	GetQuizAttempts(quizID uint) ([]dto.AttemptResponseDTO, error)
}

type quizService struct {
	extractor   extract.ContentExtractor
	generator   QuizGenerationService
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
}

func NewQuizService(
	extractor extract.ContentExtractor,
	generator QuizGenerationService,
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
) QuizService {
	return &quizService{
		extractor:   extractor,
		generator:   generator,
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
	}
}

// GenerateFromUpload runs the full pipeline for one file: extract, normalize,
// generate, persist. One file in flight per call; every stage fails fast with
// no internal retries, so the caller sees exactly one success or one failure.
func (s *quizService) GenerateFromUpload(ctx context.Context, filename, mediaType string, data []byte, req dto.GenerateQuizRequest) (*dto.QuizResponseDTO, error) {
	extracted, err := s.extractor.Extract(filename, mediaType, data)
	if err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("Content extraction failed")
		return nil, err
	}

	normalized := extract.Normalize(extracted)

	generated, err := s.generator.GenerateQuiz(ctx, normalized, req.QuestionCount, req.Difficulty)
	if err != nil {
		log.Error().Err(err).Str("file", filename).Msg("Quiz generation failed")
		return nil, err
	}

	quiz := model.Quiz{
		Title:          generated.Title,
		SourceFileName: filename,
		TotalQuestions: len(generated.Questions),
		Questions:      generated.Questions,
	}
	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Msg("Failed to persist generated quiz")
		return nil, fmt.Errorf("database error creating quiz: %w", err)
	}

	log.Info().Uint("quizID", quiz.ID).Str("title", quiz.Title).Int("questions", quiz.TotalQuestions).Msg("Quiz generated")
	return s.GetQuizDetails(quiz.ID)
}

func (s *quizService) GetAllQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list quizzes")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}

	summaries := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, quiz := range quizzes {
		var summary dto.QuizSummaryDTO
		if err := copier.Copy(&summary, &quiz); err != nil {
			log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Error copying quiz to summary DTO")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *quizService) GetQuizDetails(quizID uint) (*dto.QuizResponseDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to get quiz details")
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}

	var resp dto.QuizResponseDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		log.Error().Err(err).Msg("Failed to copy Quiz model to DTO")
		return nil, fmt.Errorf("error preparing quiz response: %w", err)
	}
	return &resp, nil
}

func (s *quizService) DeleteQuiz(quizID uint) error {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		return fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	return s.quizRepo.Delete(quizID)
}

func (s *quizService) GetQuizAttempts(quizID uint) ([]dto.AttemptResponseDTO, error) {
	attempts, err := s.attemptRepo.FindAllByQuizID(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to list attempts")
		return nil, fmt.Errorf("error fetching attempts for quiz %d: %w", quizID, err)
	}

	dtos := make([]dto.AttemptResponseDTO, 0, len(attempts))
	for _, attempt := range attempts {
		var d dto.AttemptResponseDTO
		if err := copier.Copy(&d, &attempt); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Error copying attempt to DTO")
			continue
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}
