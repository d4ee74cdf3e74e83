package model

import "fmt"

type ImportMode string

const (
	ImportModeAppend  ImportMode = "append"
	ImportModeReplace ImportMode = "replace"
)

func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(s) {
	case ImportModeAppend, "":
		return ImportModeAppend, nil
	case ImportModeReplace:
		return ImportModeReplace, nil
	default:
		return "", NewValidationError(0, "", FieldError{
			Field:  "mode",
			Reason: fmt.Sprintf("must be %q or %q", ImportModeAppend, ImportModeReplace),
		})
	}
}

type ImportResult struct {
	Mode ImportMode
	// Rows received in the batch.
	Received int
	// Rows written to the store.
	Imported int
	// Rows dropped because the key already existed (append only).
	Duplicates    int
	DuplicateKeys []string
}
