// Package handler exposes the storefront over HTTP. Handlers parse and
// validate request DTOs, call into services, and translate sentinel
// errors to status codes. Unexpected failures are logged and reported as
// a generic 500.
package handler

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// snakeCase converts a struct field name like "CouponCode" to its JSON
// form "coupon_code" for user-facing validation messages. Acronym runs
// such as "MRP" or "ImageURL" stay a single word.
func snakeCase(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && !unicode.IsUpper(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatValidationError converts validator errors to user-facing messages
// naming the offending field and rule.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := snakeCase(fe.Field())
			switch fe.Tag() {
			case "required":
				return "invalid request: " + field + " is required"
			case "notblank":
				return "invalid request: " + field + " cannot be whitespace only"
			case "email":
				return "invalid request: " + field + " must be a valid email address"
			case "min":
				return "invalid request: " + field + " is too short"
			case "max":
				return "invalid request: " + field + " exceeds maximum length"
			case "len":
				return "invalid request: " + field + " must be exactly " + fe.Param() + " characters"
			case "numeric":
				return "invalid request: " + field + " must be numeric"
			case "oneof":
				return "invalid request: " + field + " must be one of " + fe.Param()
			case "gt", "gte":
				return "invalid request: " + field + " is too small"
			case "lte":
				return "invalid request: " + field + " is too large"
			case "uuid4":
				return "invalid request: " + field + " must be a valid id"
			case "url":
				return "invalid request: " + field + " must be a valid URL"
			default:
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// parseAndValidate decodes the JSON body into dest and validates it,
// writing the 400 response itself on failure. Returns false when the
// handler should stop.
func parseAndValidate(c *fiber.Ctx, v *validator.Validate, dest any) bool {
	if err := c.BodyParser(dest); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		return false
	}
	if err := v.Struct(dest); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
		return false
	}
	return true
}
