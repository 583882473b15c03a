// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package querycodec

import "fmt"

// ValidationError reports unusable user input. It is shown inline on the
// submitting surface and never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s query: %s", e.Field, e.Message)
}

// ConfigurationError reports a programmer error: a search field outside
// title, author, topic.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unsupported search field %q: use title, author, or topic", e.Field)
}
