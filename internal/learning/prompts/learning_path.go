package prompts

import (
	"strconv"

	"github.com/yungbote/learnpath-backend/internal/domain/learning"
)

func init() {
	RegisterSpec(Spec{
		Name:       PromptLearningPath,
		Version:    1,
		SchemaName: "learning_path",
		Schema:     LearningPathSchema,
		Validators: []Validator{RequireGoal, RequireCurrentLevel},
		System: `You design personalized learning paths.
A path has a clear title, a short description of what the learner will achieve, a difficulty level,
a realistic time estimate, the key topics it covers and ` + milestoneRange + ` progressive milestones.
Each milestone lists specific, actionable resources.`,
		User: `Create a personalized learning path for someone who wants to: {{.Goal}}

Current skill level: {{.CurrentLevel}}
Time commitment: {{.TimeCommitment}}
{{if .SpecificTopics}}Specific topics of interest: {{.SpecificTopics}}
{{end}}
Make it practical, achievable, and tailored to their goals.`,
	})
}

var milestoneRange = strconv.Itoa(learning.MinMilestones) + "-" + strconv.Itoa(learning.MaxMilestones)

// LearningPathSchema is the strict JSON schema the model must fill.
func LearningPathSchema() map[string]any {
	milestone := ObjectSchema(map[string]any{
		"title":       StringSchema("Milestone title"),
		"description": StringSchema("What the learner will accomplish"),
		"resources":   StringArraySchema(),
	}, "title", "description", "resources")

	return ObjectSchema(map[string]any{
		"title":       StringSchema("A clear, concise title for the learning path"),
		"description": StringSchema("A brief description of what the learner will achieve"),
		"difficulty_level": EnumSchema(
			string(learning.DifficultyBeginner),
			string(learning.DifficultyIntermediate),
			string(learning.DifficultyAdvanced),
		),
		"estimated_duration": StringSchema("Estimated time to complete, e.g. '3 months' or '6 weeks'"),
		"topics":             StringArraySchema(),
		"milestones":         ArraySchema(milestone, learning.MinMilestones, learning.MaxMilestones),
	}, "title", "description", "difficulty_level", "estimated_duration", "topics", "milestones")
}
