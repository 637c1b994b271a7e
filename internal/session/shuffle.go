package session

import (
	"math/rand"
	"time"

	"github.com/lshigami/Quokkas/internal/model"
)

// ShuffleQuestions returns a uniform random permutation of questions for a
// randomized retake. The input slice is copied, never mutated.
func ShuffleQuestions(questions []model.Question) []model.Question {
	shuffled := make([]model.Question, len(questions))
	copy(shuffled, questions)

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Fisher-Yates: for i from last down to 1, swap with a uniform j in [0, i].
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
