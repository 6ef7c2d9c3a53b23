package gmat

import (
	"regexp"
	"strings"
)

// NormalizeAnswer trims whitespace and lower-cases an answer.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CheckAnswer reports whether the student's answer equals the correct one,
// ignoring case and surrounding whitespace.
func CheckAnswer(studentAnswer, correctAnswer string) bool {
	return NormalizeAnswer(studentAnswer) == NormalizeAnswer(correctAnswer)
}

var (
	// "A", "a", "(A)", "A)", "A." or "A:".
	labelPattern = regexp.MustCompile(`^\(?([A-Ea-e])\)?[.:]?$`)
	// "A) 12", "(B) 3/4", "C. x = 2", "D: none".
	optionPattern = regexp.MustCompile(`^\(?([A-Ea-e])\s*[).:]\s*(.+)$`)
)

// parseLabel returns the upper-case option label an answer names.
func parseLabel(answer string) (byte, bool) {
	m := labelPattern.FindStringSubmatch(strings.TrimSpace(answer))
	if m == nil {
		return 0, false
	}
	return strings.ToUpper(m[1])[0], true
}

// splitOption separates an option's label from its text. Unlabeled
// options take their label from their position.
func splitOption(option string, index int) (byte, string) {
	option = strings.TrimSpace(option)
	if m := optionPattern.FindStringSubmatch(option); m != nil {
		return strings.ToUpper(m[1])[0], strings.TrimSpace(m[2])
	}
	return byte('A' + index), option
}

// answerMatchesOption reports whether answer names one of options by
// label, by the option text, or by a labeled option in any label style.
func answerMatchesOption(answer string, options []string) bool {
	label, isLabel := parseLabel(answer)
	answer = strings.TrimSpace(answer)

	var (
		ansLabel byte
		ansText  string
	)
	m := optionPattern.FindStringSubmatch(answer)
	if m != nil {
		ansLabel, ansText = strings.ToUpper(m[1])[0], strings.TrimSpace(m[2])
	}

	for i, opt := range options {
		optLabel, text := splitOption(opt, i)
		if isLabel && optLabel == label {
			return true
		}
		if strings.EqualFold(answer, strings.TrimSpace(opt)) || strings.EqualFold(answer, text) {
			return true
		}
		if m != nil && optLabel == ansLabel && strings.EqualFold(ansText, text) {
			return true
		}
	}
	return false
}
