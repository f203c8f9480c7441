package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain        = "domain"
	CtxListHistory   = "List"
	CtxAddHistory    = "Add"
	CtxRemoveHistory = "Remove"
	CtxClearHistory  = "Clear"

	// Infrastructure context names
	CtxDB        = "db"
	CtxStoreGet  = "Get"
	CtxStoreSet  = "Set"
	CtxStoreDel  = "Delete"
	CtxClose     = "Close"
	CtxAPI       = "api"
	CtxRenderer  = "renderer"
	CtxThumbnail = "Thumbnail"

	// General context names
	CtxRouter           = "Router"
	CtxMain             = "Main"
	CtxEncodeQR         = "EncodeQR"
	CtxRenderQR         = "RenderQR"
	CtxRecreateHistory  = "RecreateHistory"
	CtxHistoryThumbnail = "HistoryThumbnail"
	CtxHistoryEvents    = "HistoryEvents"
	CtxUploadLogo       = "UploadLogo"
)

// Data field keys
const (
	// Service data fields
	DataService    = "service"
	DataType       = "type"
	DataValue      = "value"
	DataContent    = "content"
	DataEntryID    = "entry_id"
	DataEntryCount = "entry_count"
	DataLimit      = "limit"
	DataKey        = "key"
	DataFilename   = "filename"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
)

// Error message constants
const (
	ErrEmptyValue       = "value cannot be empty"
	ErrEmptyAddress     = "email address cannot be empty"
	ErrEmptySSID        = "wifi network name (SSID) cannot be empty"
	ErrEmptyName        = "contact name cannot be empty"
	ErrEmptySMSNumber   = "sms phone number cannot be empty"
	ErrEmptyEventTitle  = "event title cannot be empty"
	ErrEmptyCoordinates = "latitude and longitude are required"
	ErrUnknownType      = "unknown payload type"
	ErrEntryNotFound    = "history entry not found"
	ErrStoreKeyNotFound = "store key not found"
)

// API routes
const (
	RouteEncodeQR         = "/api/qr/encode"
	RouteRenderQR         = "/api/qr/render"
	RouteHistory          = "/api/history"
	RouteHistoryByID      = "/api/history/{entryID}"
	RouteHistoryRecreate  = "/api/history/{entryID}/recreate"
	RouteHistoryThumbnail = "/api/history/{entryID}/thumbnail"
	RouteHistoryEvents    = "/api/history/events"
	RouteUploadLogo       = "/api/logo"
	RouteHealthcheck      = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Message constants for application
const (
	MsgApplicationStarting = "Application starting"
	MsgFailedToInitDB      = "Failed to initialize database"
	MsgServerStarting      = "Server starting"
	MsgServerFailedToStart = "Server failed to start"
	MsgServerShuttingDown  = "Server shutting down"
	MsgServerShutdownError = "Error during server shutdown"
	MsgServerStopped       = "Server stopped"
	MsgRequestReceived     = "Request received"
	MsgRequestCompleted    = "Request completed"
	MsgSettingUpRoutes     = "Setting up API routes"
	MsgHealthcheckRequest  = "Handling healthcheck request"
	MsgHealthy             = "Healthy"
)

// Cache namespaces
const (
	RenderNamespace    = "RENDER"
	ThumbnailNamespace = "THUMB"
)

// History storage
const (
	HistoryStorageKey   = "qr-code-history"
	DefaultHistoryLimit = 20
)
