package validation

import "fmt"

// ValidatePostTitle checks title length bounds.
func ValidatePostTitle(title string) error {
	if len(title) < 1 || len(title) > 255 {
		return fmt.Errorf("title must be between 1 and 255 characters")
	}
	return nil
}

// ValidatePostCategory checks category length bounds.
func ValidatePostCategory(category string) error {
	if len(category) < 1 || len(category) > 50 {
		return fmt.Errorf("category must be between 1 and 50 characters")
	}
	return nil
}

// ValidateCommentContent checks comment content length bounds.
func ValidateCommentContent(content string) error {
	if len(content) < 1 || len(content) > 1000 {
		return fmt.Errorf("comment content must be between 1 and 1000 characters")
	}
	return nil
}
