package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	paramID = "id"

	queryProjectID = "project_id"
	queryAPIKeyID  = "api_key_id"
	queryAPIKey    = "api_key"
	querySkip      = "skip"
	queryLimit     = "limit"
	queryDays      = "days"
	queryStartDate = "start_date"
	queryEndDate   = "end_date"

	formFieldFile      = "file"
	formFieldProjectID = "project_id"

	defaultListLimit = 100
	maxListLimit     = 1000
	defaultUsageDays = 30

	dashboardWindowDays = 30

	// StorageLimitBytes is the per-account cap surfaced on the dashboard.
	StorageLimitBytes int64 = 50 << 30
)

const (
	msgInvalidProjectID       = "invalid project_id"
	msgInvalidFileID          = "invalid file id"
	msgInvalidAPIKeyID        = "invalid API key id"
	msgProjectIDRequired      = "project_id required"
	msgAPIKeyRequired         = "api_key required"
	msgFileFieldRequired      = "file field required"
	msgInvalidDateFilter      = "invalid date filter"
	msgInvalidDays            = "invalid days"
	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody     = "invalid request body"

	msgAPIKeyNotFound = "API key not found"
	msgFileNotFound   = "file not found"

	msgCreateProjectFail = "failed to create project"
	msgGetProjectFail    = "failed to load project"
	msgListProjectsFail  = "failed to list projects"
	msgDeleteProjectFail = "failed to delete project"
	msgProjectStatsFail  = "failed to compute project stats"
	msgCreateAPIKeyFail  = "failed to create API key"
	msgListAPIKeysFail   = "failed to list API keys"
	msgDeleteAPIKeyFail  = "failed to delete API key"
	msgUploadFileFail    = "failed to upload file"
	msgListFilesFail     = "failed to list files"
	msgDeleteFileFail    = "failed to delete file"
	msgUsageStatsFail    = "failed to compute usage stats"
	msgDashboardFail     = "failed to compute dashboard stats"
)
