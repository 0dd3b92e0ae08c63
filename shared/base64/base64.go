package base64

import "strings"

const (
	schemePrefix  = "data:"
	encodingToken = ";base64,"
)

// GetContentType extracts the media type from a data URI such as
// "data:image/png;base64,...". It returns an empty string when the
// input does not carry one.
func GetContentType(file string) string {
	rest, ok := strings.CutPrefix(file, schemePrefix)
	if !ok {
		return ""
	}

	contentType, _, found := strings.Cut(rest, encodingToken)
	if !found {
		return ""
	}

	return contentType
}
