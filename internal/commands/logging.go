package commands

import (
	"strings"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// CommandLogger returns the commands module logger tagged with the entity type
// the handlers act on.
func CommandLogger(provider interfaces.LoggerProvider, entityType string) interfaces.Logger {
	name := strings.TrimSpace(entityType)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component":             "command",
		logging.FieldEntityType: name,
	})
}
