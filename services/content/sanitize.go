package content

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// newSanitizePolicy builds the policy applied to every free-text field on
// create and update: strip all markup, keep the text.
func newSanitizePolicy() *bluemonday.Policy {
	return bluemonday.StrictPolicy()
}

func sanitize(policy *bluemonday.Policy, value string) string {
	return strings.TrimSpace(policy.Sanitize(value))
}
