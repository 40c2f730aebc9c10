package helpers

import (
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// CreateSlug lowers the text, collapses every run of non-alphanumeric
// characters into a single hyphen and trims leading/trailing hyphens.
func CreateSlug(text string) string {
	slug := strings.ToLower(text)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// FormatTime renders a timestamp the way every API payload expects it:
// UTC ISO 8601 with a trailing Z.
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// Success writes the uniform success envelope. Map data is spread into
// the envelope itself; any other non-nil value lands under "data".
func Success(c *fiber.Ctx, statusCode int, data interface{}, message string) error {
	response := fiber.Map{"success": true}

	switch d := data.(type) {
	case nil:
		// No payload, envelope only.
	case fiber.Map:
		for k, v := range d {
			response[k] = v
		}
	case map[string]interface{}:
		for k, v := range d {
			response[k] = v
		}
	default:
		response["data"] = data
	}

	if message != "" {
		response["message"] = message
	}

	return c.Status(statusCode).JSON(response)
}

// Error writes the uniform error envelope.
func Error(c *fiber.Ctx, statusCode int, errorCode, message string, details interface{}) error {
	response := fiber.Map{
		"success":   false,
		"error":     message,
		"timestamp": FormatTime(time.Now()),
	}

	if errorCode != "" {
		response["error_code"] = errorCode
	}
	if details != nil {
		response["details"] = details
	}

	return c.Status(statusCode).JSON(response)
}

// ValidateRequiredFields reports which of the required fields are absent,
// null, or an empty string in the decoded request body.
func ValidateRequiredFields(data map[string]interface{}, required []string) []string {
	missing := []string{}

	for _, field := range required {
		value, ok := data[field]
		if !ok || value == nil || value == "" {
			missing = append(missing, field)
		}
	}

	return missing
}
