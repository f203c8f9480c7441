package constant

// Domain service error codes
const (
	// Payload codec - Validation errors (1xx)
	ErrCodeEmptyValue       = "SVC101"
	ErrCodeEmptySSID        = "SVC102"
	ErrCodeEmptyName        = "SVC103"
	ErrCodeEmptySMSNumber   = "SVC104"
	ErrCodeEmptyEventTitle  = "SVC105"
	ErrCodeEmptyCoordinates = "SVC106"

	// History service - Storage errors (2xx)
	ErrCodePersistFailure = "SVC201"
	ErrCodeCorruptHistory = "SVC202"

	// History service - Retrieval errors (3xx)
	ErrCodeEntryNotFound = "SVC301"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Get operation errors (1xx)
	ErrCodeDBLookup   = "DB101"
	ErrCodeDBScanRows = "DB102"

	// Set operation errors (2xx)
	ErrCodeDBUpsert = "DB201"

	// Delete operation errors (3xx)
	ErrCodeDBDelete = "DB301"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Renderer error codes
const (
	ErrCodeRenderEncode = "RND001"
	ErrCodeRenderWriter = "RND002"
	ErrCodeRenderRead   = "RND003"
	ErrCodeThumbnail    = "RND004"
)

// API error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIUpload         = "API003"
	ErrCodeAppDBInit         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeStorage    = "storage"
	ErrTypeRetrieval  = "retrieval"
	ErrTypeRender     = "render"

	// Infrastructure error types
	ErrTypeDB  = "db"
	ErrTypeAPI = "api"
	ErrTypeApp = "application"
)
