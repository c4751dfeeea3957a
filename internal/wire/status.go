package wire

import (
	"bytes"
	"encoding/json"
)

// PayloadPrefix is the XSSI guard every response body starts with. Stripping
// it yields either nothing (an empty object) or a serialized structure.
const PayloadPrefix = ")]}'"

// Application status codes carried in the response envelope.
const (
	StatusOk              = 0
	StatusInvalidRequest  = 1
	StatusNotAuthorized   = 2
	StatusForbidden       = 3
	StatusAlreadyExists   = 4
	StatusNotFound        = 5
	StatusInvalidName     = 6
	StatusInvalidPassword = 7
	StatusInvalidEmail    = 8
	StatusBanned          = 9
	StatusUploadTooLarge  = 10
	StatusUnsupportedType = 11
	StatusRateLimited     = 12
	StatusQuotaExceeded   = 13
)

var statusMessages = [...]string{
	StatusOk:              "Ok",
	StatusInvalidRequest:  "Invalid request",
	StatusNotAuthorized:   "Not authorized",
	StatusForbidden:       "Forbidden",
	StatusAlreadyExists:   "Already exists",
	StatusNotFound:        "Not found",
	StatusInvalidName:     "Invalid name",
	StatusInvalidPassword: "Invalid password",
	StatusInvalidEmail:    "Invalid email",
	StatusBanned:          "Banned",
	StatusUploadTooLarge:  "Upload too large",
	StatusUnsupportedType: "Unsupported format",
	StatusRateLimited:     "Rate limited",
	StatusQuotaExceeded:   "Quota exceeded",
}

// StatusMessage resolves a status code to its human-readable message.
// Unknown codes map to "Unknown".
func StatusMessage(code int) string {
	if code < 0 || code >= len(statusMessages) {
		return "Unknown"
	}
	return statusMessages[code]
}

// envelope holds the application-level fields shared by every payload. An
// explicit statusText, when present, overrides the table lookup.
type envelope struct {
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
}

// stripPayload validates and removes the XSSI prefix. It returns the
// serialized structure and true, or nil and false when the body is absent or
// the prefix check fails ("no content"). A body that is exactly the prefix
// parses to an empty object.
func stripPayload(raw []byte) (json.RawMessage, bool) {
	if !bytes.HasPrefix(raw, []byte(PayloadPrefix)) {
		return nil, false
	}
	rest := bytes.TrimSpace(raw[len(PayloadPrefix):])
	if len(rest) == 0 {
		return json.RawMessage("{}"), true
	}
	return json.RawMessage(rest), true
}
