package core

// error_messages.go maps technical errors to messages a hangar user can act
// on, each with a short code support can look up.
//
// # Error Codes
//
// File errors:
//
//	FILE001 - File too large             patterns: "too large"
//	FILE002 - Unreadable file            patterns: "invalid spreadsheet", "invalid csv"
//	FILE003 - Unsupported file type      patterns: "unsupported file type"
//	FILE004 - No file selected           patterns: "no file provided"
//	FILE005 - Empty file                 patterns: "empty file"
//
// Validation errors:
//
//	VAL001 - Missing A/C or Desc column  patterns: "missing required column"
//	VAL002 - Too many rows               patterns: "too many rows"
//	VAL003 - Required field empty        patterns: "required field"
//
// Session errors:
//
//	SES001 - No inventory uploaded       patterns: "no inventory uploaded"
//	SES002 - Session expired             patterns: "session not found"
//
// Upload errors:
//
//	UPL001 - Upload cancelled            patterns: "upload cancelled"
//	UPL002 - System busy                 patterns: "too many uploads"
//	UPL003 - Upload interrupted          patterns: "read upload", "unexpected eof"
//	UPL004 - Request cancelled           patterns: "context canceled"
//	UPL005 - Request timed out           patterns: "context deadline exceeded"
//
// Manifest errors:
//
//	MAN001 - Invalid manifest            patterns: "invalid manifest"
//	MAN002 - Duplicate manifest part     patterns: "duplicate manifest part"
//
// Other:
//
//	RATE001 - Too many requests          patterns: "rate limit"
//	ERR000  - Anything else; check the server log for the original error.
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns go before general ones. Manifest errors
// come first because they embed row validation text.

import (
	"fmt"
	"strings"
)

// UserMessage is the user-facing rendition of an error.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Manifest
	{"invalid manifest", UserMessage{
		Message: "The required-parts manifest is invalid",
		Action:  "Fix the manifest configuration and restart the service",
		Code:    "MAN001",
	}},
	{"duplicate manifest part", UserMessage{
		Message: "The required-parts manifest lists a part twice",
		Action:  "Remove the duplicate entry and restart the service",
		Code:    "MAN002",
	}},

	// File
	{"too large", UserMessage{
		Message: "The file exceeds the maximum upload size",
		Action:  "Remove unused sheets or columns and upload again",
		Code:    "FILE001",
	}},
	{"invalid spreadsheet", UserMessage{
		Message: "The file could not be read as a spreadsheet",
		Action:  "Open it in Excel, save as .xlsx and upload again",
		Code:    "FILE002",
	}},
	{"invalid csv", UserMessage{
		Message: "The file could not be read as CSV",
		Action:  "Check for unbalanced quotes, or upload the .xlsx instead",
		Code:    "FILE002",
	}},
	{"unsupported file type", UserMessage{
		Message: "This file type is not supported",
		Action:  "Upload an .xlsx or .csv file",
		Code:    "FILE003",
	}},
	{"no file provided", UserMessage{
		Message: "No file was selected",
		Action:  "Choose an inventory spreadsheet to upload",
		Code:    "FILE004",
	}},
	{"empty file", UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Upload a spreadsheet with a header row and inventory rows",
		Code:    "FILE005",
	}},

	// Validation
	{"missing required column", UserMessage{
		Message: "The A/C or Desc column is missing",
		Action:  "Make sure the header row contains both A/C and Desc",
		Code:    "VAL001",
	}},
	{"too many rows", UserMessage{
		Message: "The file has more rows than allowed",
		Action:  "Split the inventory into smaller files",
		Code:    "VAL002",
	}},
	{"required field", UserMessage{
		Message: "A required value is empty",
		Action:  "Fill in the A/C column for every row",
		Code:    "VAL003",
	}},

	// Session
	{"no inventory uploaded", UserMessage{
		Message: "No inventory has been uploaded yet",
		Action:  "Upload an inventory spreadsheet first",
		Code:    "SES001",
	}},
	{"session not found", UserMessage{
		Message: "Your session has expired",
		Action:  "Reload the page and upload the inventory again",
		Code:    "SES002",
	}},

	// Upload
	{"upload cancelled", UserMessage{
		Message: "The upload was cancelled",
		Action:  "Start a new upload when ready",
		Code:    "UPL001",
	}},
	{"too many uploads", UserMessage{
		Message: "The server is busy processing other uploads",
		Action:  "Wait a moment and try again",
		Code:    "UPL002",
	}},
	{"read upload", UserMessage{
		Message: "The upload was interrupted",
		Action:  "Check your connection and try again",
		Code:    "UPL003",
	}},
	{"unexpected eof", UserMessage{
		Message: "The upload was interrupted",
		Action:  "Check your connection and try again",
		Code:    "UPL003",
	}},
	{"context canceled", UserMessage{
		Message: "The request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
	}},
	{"context deadline exceeded", UserMessage{
		Message: "The request timed out",
		Action:  "Try a smaller file or try again later",
		Code:    "UPL005",
	}},

	{"rate limit", UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError returns the user message for err, or the ERR000 fallback.
// A nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	text := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(text, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
