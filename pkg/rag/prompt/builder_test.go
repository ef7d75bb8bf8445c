package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"articlegen-be/internal/entity"
)

func validSettings() entity.ArticleSettings {
	return entity.ArticleSettings{
		Length: "medium",
		Tone:   "professional",
		Angle:  "expert-analysis",
	}
}

func TestValidateSettings(t *testing.T) {
	assert.NoError(t, ValidateSettings(validSettings()))

	s := validSettings()
	s.Length = "gigantic"
	err := ValidateSettings(s)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gigantic")

	s = validSettings()
	s.Tone = "sarcastic"
	assert.Error(t, ValidateSettings(s))

	s = validSettings()
	s.Angle = "clickbait"
	assert.Error(t, ValidateSettings(s))
}

func TestValidateSettingsIgnoresCustomPrompt(t *testing.T) {
	s := validSettings()
	s.CustomPrompt = "literally anything goes here, even {{weird}} markup"
	assert.NoError(t, ValidateSettings(s))
}

func TestBuildArticlePrompt(t *testing.T) {
	s := validSettings()
	out := BuildArticlePrompt("- point one\n- point two", s)

	assert.Contains(t, out, "1000-1500 words")
	assert.Contains(t, out, "professional")
	assert.Contains(t, out, "expert-analysis")
	assert.Contains(t, out, "- point one\n- point two")
	assert.NotContains(t, out, "Extra instructions")
}

func TestBuildArticlePromptAppendsCustomPrompt(t *testing.T) {
	s := validSettings()
	s.CustomPrompt = "Mention our product exactly once."
	out := BuildArticlePrompt("- point", s)

	assert.Contains(t, out, "Extra instructions from the user:\nMention our product exactly once.")
}

func TestBuildArticlePromptLengthGuides(t *testing.T) {
	for length, guide := range map[string]string{
		"short":  "500-800 words",
		"medium": "1000-1500 words",
		"long":   "2000-3000 words",
	} {
		s := validSettings()
		s.Length = length
		assert.Contains(t, BuildArticlePrompt("kp", s), guide)
	}
}
