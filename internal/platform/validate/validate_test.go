package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title      string   `json:"title" validate:"notblank,max=20"`
	URL        string   `json:"url" validate:"omitempty,url"`
	Difficulty string   `json:"difficulty_level" validate:"oneof=beginner intermediate advanced"`
	Tags       []string `json:"tags" validate:"max=3,dive,notblank"`
}

func TestStructValid(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Struct(sample{Title: "Go", URL: "https://go.dev", Difficulty: "beginner", Tags: []string{"go"}})
	assert.NoError(t, err)
}

func TestStructTranslatesFailures(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Struct(sample{Title: "   ", URL: "not a url", Difficulty: "expert"})
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 3)
	assert.Equal(t, "title must not be blank", errs[0])
	assert.Contains(t, errs[1], "url")
	assert.Contains(t, errs[2], "difficulty_level must be one of")
}

func TestStructBlankTag(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Struct(sample{Title: "ok", Difficulty: "advanced", Tags: []string{"a", " "}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be blank")
}
