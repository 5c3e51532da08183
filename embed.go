// Package phonebook provides embedded runtime resources.
package phonebook

import _ "embed"

// ConfigTemplate is the annotated default configuration written by "phonebook init".
//
//go:embed templates/config.yaml
var ConfigTemplate []byte
