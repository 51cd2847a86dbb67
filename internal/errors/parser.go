package errors

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string // code constant (see codes.go)
	Message string
}

// Postgres error class codes we care about
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqNotNullViolation    = "23502"
	pqCheckViolation      = "23514"
)

// IsDuplicateKey reports whether err is a unique-constraint violation,
// either as a typed Postgres error or as the message-wrapped form GORM
// surfaces for sqlite.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	errStrLower := strings.ToLower(err.Error())
	return strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint")
}

// ParseError converts a raw database or driver error into a stable
// code plus a message safe to show users. Sensitive detail stays out
// of the response; the original error is for logs only.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Driver-level Postgres errors carry SQLSTATE codes
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return parseDuplicateKeyError(pqErr.Error(), context)
		case pqForeignKeyViolation:
			return parseForeignKeyError(pqErr.Error(), context)
		case pqNotNullViolation:
			return parseNotNullError(pqErr.Error())
		case pqCheckViolation:
			return parseCheckConstraintError(pqErr.Error())
		}
	}

	// GORM wraps some driver errors as plain strings; fall back to
	// message matching so sqlite behaves the same in tests.
	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr, context)
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return parseNotNullError(errStr)
	}
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStr)
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Failed to reach an external service. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}

	if strings.Contains(errLower, "store_settings") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Store settings already exist",
		}
	}

	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This record already exists. Please try again",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") {
		if strings.Contains(context, "product") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "This product has related orders or cart items and cannot be deleted",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This record is referenced by other data and cannot be deleted",
		}
	}

	if strings.Contains(errLower, "product_id") || strings.Contains(errLower, "fk_products") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "The referenced product does not exist",
		}
	}
	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "The referenced user does not exist",
		}
	}
	if strings.Contains(errLower, "order_id") || strings.Contains(errLower, "fk_orders") {
		return ErrorInfo{
			Code:    OrderNotFound,
			Message: "The referenced order does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "The referenced record could not be found",
	}
}

func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "Email is required"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "Password is required"}
	}
	if strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ValidationRequired, Message: "Name is required"}
	}
	if strings.Contains(errLower, "price") {
		return ErrorInfo{Code: ValidationRequired, Message: "Price is required"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "A required field is missing",
	}
}

func parseCheckConstraintError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "quantity") {
		return ErrorInfo{
			Code:    CartInvalidQuantity,
			Message: "Quantity must be at least 1",
		}
	}
	if strings.Contains(errLower, "price") {
		return ErrorInfo{
			Code:    ProductInvalidPrice,
			Message: "Price must not be negative",
		}
	}
	if strings.Contains(errLower, "minimum_delivery_days") {
		return ErrorInfo{
			Code:    SettingsInvalidLeadTime,
			Message: "Minimum delivery days must be at least 1",
		}
	}

	return ErrorInfo{
		Code:    ValidationInvalidInput,
		Message: "Invalid input",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "option") {
		return "Customization option not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart item not found"
	}
	if strings.Contains(contextLower, "order") {
		return "Order not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}
	if strings.Contains(contextLower, "settings") {
		return "Store settings not found"
	}

	return "The requested record could not be found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "place") {
		return "An error occurred while saving. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "An error occurred while updating. Please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "An error occurred while deleting. Please try again later"
	}

	return "An internal error occurred. Please try again later"
}

// ParseAndRespond parses err and writes the response in one step
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
