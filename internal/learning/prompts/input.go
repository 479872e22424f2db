package prompts

import (
	"errors"
	"strings"
)

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Learning path generation
	Goal           string
	CurrentLevel   string
	TimeCommitment string
	SpecificTopics string
}

// Validator rejects an Input before rendering.
type Validator func(Input) error

func RequireGoal(in Input) error {
	if strings.TrimSpace(in.Goal) == "" {
		return errors.New("goal is required")
	}
	return nil
}

func RequireCurrentLevel(in Input) error {
	if strings.TrimSpace(in.CurrentLevel) == "" {
		return errors.New("current level is required")
	}
	return nil
}
