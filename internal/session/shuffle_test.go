package session

import (
	"testing"

	"github.com/lshigami/Quokkas/internal/model"
)

func TestShuffleQuestionsIsPermutation(t *testing.T) {
	questions := make([]model.Question, 20)
	for i := range questions {
		questions[i] = model.Question{ID: uint(i + 1), OrderInQuiz: i + 1}
	}

	shuffled := ShuffleQuestions(questions)

	if len(shuffled) != len(questions) {
		t.Fatalf("shuffled length = %d, want %d", len(shuffled), len(questions))
	}

	seen := map[uint]int{}
	for _, q := range shuffled {
		seen[q.ID]++
	}
	for _, q := range questions {
		if seen[q.ID] != 1 {
			t.Errorf("question %d appears %d times in shuffle, want exactly once", q.ID, seen[q.ID])
		}
	}
}

func TestShuffleQuestionsLeavesInputUntouched(t *testing.T) {
	questions := make([]model.Question, 20)
	for i := range questions {
		questions[i] = model.Question{ID: uint(i + 1), OrderInQuiz: i + 1}
	}

	ShuffleQuestions(questions)

	for i, q := range questions {
		if q.ID != uint(i+1) {
			t.Fatalf("input slice mutated at index %d: ID %d", i, q.ID)
		}
	}
}

func TestShuffleQuestionsSmallInputs(t *testing.T) {
	if got := ShuffleQuestions(nil); len(got) != 0 {
		t.Errorf("shuffle of nil returned %d questions", len(got))
	}

	one := []model.Question{{ID: 42}}
	got := ShuffleQuestions(one)
	if len(got) != 1 || got[0].ID != 42 {
		t.Errorf("shuffle of single-element slice = %v", got)
	}
}
