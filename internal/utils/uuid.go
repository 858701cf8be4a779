package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewOperationID returns a random id for correlating the log lines of one gateway call.
func NewOperationID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
