package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to display messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token blacklisted
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden   = "AUTHZ_FORBIDDEN"      // no access
	AuthzManagerOnly = "AUTHZ_MANAGER_ONLY"   // manager role required
	AuthzOwnerOnly   = "AUTHZ_OWNER_ONLY"     // resource owner only
	AuthzRoleMissing = "AUTHZ_ROLE_NOT_FOUND" // role claim missing

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound        = "PRODUCT_NOT_FOUND"
	ProductInvalidPrice    = "PRODUCT_INVALID_PRICE"
	ProductInvalidCategory = "PRODUCT_INVALID_CATEGORY"

	// ==================== Customization options (OPTION_) ====================
	OptionNotFound        = "OPTION_NOT_FOUND"
	OptionInvalidCategory = "OPTION_INVALID_CATEGORY"

	// ==================== Cart (CART_) ====================
	CartEmpty           = "CART_EMPTY"            // checkout with no items
	CartItemNotFound    = "CART_ITEM_NOT_FOUND"   // no line for product
	CartInvalidQuantity = "CART_INVALID_QUANTITY" // quantity out of range

	// ==================== Orders (ORDER_) ====================
	OrderNotFound           = "ORDER_NOT_FOUND"
	OrderLeadTime           = "ORDER_LEAD_TIME"            // delivery date too soon
	OrderContactRequired    = "ORDER_CONTACT_REQUIRED"     // name/email missing
	OrderInvalidStatus      = "ORDER_INVALID_STATUS"       // unknown status value
	OrderInvalidTransition  = "ORDER_INVALID_TRANSITION"   // workflow violation
	OrderPartialWrite       = "ORDER_PARTIAL_WRITE"        // checkout write failed mid-way
	OrderExportFailed       = "ORDER_EXPORT_FAILED"        // xlsx generation failed

	// ==================== Settings (SETTINGS_) ====================
	SettingsInvalidLeadTime = "SETTINGS_INVALID_LEAD_TIME" // minimum days < 1

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
