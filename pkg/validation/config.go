package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucaspazio/Financial-Model/pkg/constants"
)

// ErrInvalidScenarioName is wrapped by every error ValidateScenarioName returns.
var ErrInvalidScenarioName = errors.New("invalid scenario name")

// ValidateScenarioName checks that name can be used as a storage key. Names
// are 1 to constants.MaxScenarioNameLength characters of letters, digits,
// spaces, '_', '-' and '.', and may not start with '.'.
func ValidateScenarioName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidScenarioName)
	}
	if len(name) > constants.MaxScenarioNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidScenarioName, constants.MaxScenarioNameLength)
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: name may not start with '.'", ErrInvalidScenarioName)
	}
	for _, r := range name {
		if !allowedNameRune(r) {
			return fmt.Errorf("%w: character %q is not allowed", ErrInvalidScenarioName, r)
		}
	}
	return nil
}

func allowedNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '_', r == '-', r == '.':
		return true
	}
	return false
}
