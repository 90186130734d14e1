package endpoint

import "regexp"

// EntityNameValidator checks destination names against broker naming rules.
// Implementations must be safe for concurrent use.
type EntityNameValidator interface {
	Validate(name string) error
}

// DefaultNameValidator enforces standard RabbitMQ entity naming: letters,
// digits, hyphen, underscore, period and colon, at most 128 characters.
var DefaultNameValidator EntityNameValidator = rabbitNameValidator{}

var entityNamePattern = regexp.MustCompile(`^[A-Za-z0-9\-_.:]+$`)

type rabbitNameValidator struct{}

func (rabbitNameValidator) Validate(name string) error {
	if name == "" {
		return &InvalidNameError{Name: name, Reason: "name must not be empty"}
	}
	if len(name) > 128 {
		return &InvalidNameError{Name: name, Reason: "name must not exceed 128 characters"}
	}
	if !entityNamePattern.MatchString(name) {
		return &InvalidNameError{Name: name, Reason: "name must contain only letters, digits, hyphen, underscore, period or colon"}
	}
	return nil
}
