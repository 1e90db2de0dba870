package cryptasium

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateForm checks a bound form struct against its validate tags and
// returns a user-facing message for the first failing field, or "" when valid.
func ValidateForm(form any) string {
	err := validate.Struct(form)
	if err == nil {
		return ""
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid input."
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return "Please fill in the " + fieldLabel(fe.Field()) + " field."
	case "max":
		return "The " + fieldLabel(fe.Field()) + " field is too long."
	case "url":
		return "The " + fieldLabel(fe.Field()) + " field must be a valid URL."
	case "email":
		return "Please enter a valid email address."
	default:
		return "The " + fieldLabel(fe.Field()) + " field is invalid."
	}
}

// fieldLabel lowercases a struct field name for display in error messages.
func fieldLabel(name string) string {
	switch name {
	case "VideoID":
		return "video ID"
	case "ThumbnailURL":
		return "thumbnail URL"
	case "AudioURL":
		return "audio URL"
	case "FeaturedImage":
		return "featured image"
	case "EpisodeNumber":
		return "episode number"
	}
	out := make([]rune, 0, len(name))
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out = append(out, ' ')
			}
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
