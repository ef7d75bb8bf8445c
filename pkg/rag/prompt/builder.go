package prompt

import (
	"fmt"
	"strings"

	"articlegen-be/internal/entity"
	"articlegen-be/pkg/apperror"
)

var lengthGuides = map[string]string{
	"short":  "500-800 words",
	"medium": "1000-1500 words",
	"long":   "2000-3000 words",
}

var toneGuides = map[string]string{
	"professional":   "Use formal language, industry terminology, and maintain a business-appropriate tone",
	"casual":         "Write in a conversational, friendly manner while maintaining credibility",
	"technical":      "Focus on detailed explanations, use technical terms, and maintain precision",
	"conversational": "Write as if having a dialogue with the reader, use natural language",
}

var angleGuides = map[string]string{
	"problem-solution": "Present the problem clearly, then detail the solution with supporting evidence",
	"expert-analysis":  "Provide deep insights and expert perspective on the topic",
	"case-study":       "Present real-world examples and analyze outcomes",
	"industry-trends":  "Focus on current developments and future implications in the industry",
}

// ValidateSettings rejects unknown values before any model call is made.
// CustomPrompt is free text and never validated.
func ValidateSettings(settings entity.ArticleSettings) error {
	if _, ok := lengthGuides[settings.Length]; !ok {
		return apperror.Newf(apperror.CodeValidationFailed, "unknown article length %q", settings.Length)
	}
	if _, ok := toneGuides[settings.Tone]; !ok {
		return apperror.Newf(apperror.CodeValidationFailed, "unknown article tone %q", settings.Tone)
	}
	if _, ok := angleGuides[settings.Angle]; !ok {
		return apperror.Newf(apperror.CodeValidationFailed, "unknown article angle %q", settings.Angle)
	}
	return nil
}

// BuildArticlePrompt renders the drafting instruction from approved key
// points and the user's settings. Settings must have been validated first.
func BuildArticlePrompt(keyPoints string, settings entity.ArticleSettings) string {
	lengthGuide := lengthGuides[settings.Length]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write a %s article in Markdown using the key points below and the specified parameters.\n\n", lengthGuide))
	sb.WriteString("- Start with a single H1 title line.\n")
	sb.WriteString("- Use clear sections with H2/H3 headings as appropriate.\n")
	sb.WriteString(fmt.Sprintf("- Maintain a %s tone (%s).\n", settings.Tone, toneGuides[settings.Tone]))
	sb.WriteString(fmt.Sprintf("- Follow the %s approach (%s).\n", settings.Angle, angleGuides[settings.Angle]))
	sb.WriteString("- Integrate all key points with smooth transitions.\n")
	sb.WriteString("- End with a concise conclusion or call-to-action.\n")
	sb.WriteString("- Return only the final article in Markdown. Do not include any preamble, system messages, or code fences.\n\n")
	sb.WriteString(fmt.Sprintf("Key points:\n%s\n\n", keyPoints))
	sb.WriteString("Additional parameters:\n")
	sb.WriteString(fmt.Sprintf("- Target length: %s\n", lengthGuide))
	sb.WriteString(fmt.Sprintf("- Tone: %s\n", settings.Tone))
	sb.WriteString(fmt.Sprintf("- Angle: %s\n", settings.Angle))

	if settings.CustomPrompt != "" {
		sb.WriteString(fmt.Sprintf("\nExtra instructions from the user:\n%s", settings.CustomPrompt))
	}

	return sb.String()
}
