package prompts

type PromptName string

const (
	PromptLearningPath PromptName = "learning_path"
)
