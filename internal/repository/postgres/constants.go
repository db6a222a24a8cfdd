package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errUserNotFound    = "user not found"
	errProjectNotFound = "project not found"
	errFileNotFound    = "file not found"
	errAPIKeyNotFound  = "API key not found"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"
	errFailedApplySchemaFmt          = "failed to apply schema: %w"

	errFailedCreateUserFmt = "failed to create user: %w"
	errFailedGetUserFmt    = "failed to get user: %w"

	errFailedCreateProjectFmt = "failed to create project: %w"
	errFailedGetProjectFmt    = "failed to get project: %w"
	errFailedListProjectsFmt  = "failed to list projects: %w"
	errFailedScanProjectFmt   = "failed to scan project: %w"
	errFailedDeleteProjectFmt = "failed to delete project: %w"

	errFailedCreateAPIKeyFmt   = "failed to create API key: %w"
	errFailedGetAPIKeyFmt      = "failed to get API key: %w"
	errFailedListAPIKeysFmt    = "failed to list API keys: %w"
	errFailedScanAPIKeyFmt     = "failed to scan API key: %w"
	errFailedUpdateLastUsedFmt = "failed to update last used: %w"
	errFailedDeleteAPIKeyFmt   = "failed to delete API key: %w"

	errFailedCreateFileFmt = "failed to create file: %w"
	errFailedGetFileFmt    = "failed to get file: %w"
	errFailedListFilesFmt  = "failed to list files: %w"
	errFailedScanFileFmt   = "failed to scan file: %w"
	errFailedDeleteFileFmt = "failed to delete file: %w"
	errFailedGetStatsFmt   = "failed to get storage stats: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedApplySchema          = func(err error) error { return fmt.Errorf(errFailedApplySchemaFmt, err) }

	errFailedCreateUser = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedGetUser    = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }

	errFailedCreateProject = func(err error) error { return fmt.Errorf(errFailedCreateProjectFmt, err) }
	errFailedGetProject    = func(err error) error { return fmt.Errorf(errFailedGetProjectFmt, err) }
	errFailedListProjects  = func(err error) error { return fmt.Errorf(errFailedListProjectsFmt, err) }
	errFailedScanProject   = func(err error) error { return fmt.Errorf(errFailedScanProjectFmt, err) }
	errFailedDeleteProject = func(err error) error { return fmt.Errorf(errFailedDeleteProjectFmt, err) }

	errFailedCreateAPIKey   = func(err error) error { return fmt.Errorf(errFailedCreateAPIKeyFmt, err) }
	errFailedGetAPIKey      = func(err error) error { return fmt.Errorf(errFailedGetAPIKeyFmt, err) }
	errFailedListAPIKeys    = func(err error) error { return fmt.Errorf(errFailedListAPIKeysFmt, err) }
	errFailedScanAPIKey     = func(err error) error { return fmt.Errorf(errFailedScanAPIKeyFmt, err) }
	errFailedUpdateLastUsed = func(err error) error { return fmt.Errorf(errFailedUpdateLastUsedFmt, err) }
	errFailedDeleteAPIKey   = func(err error) error { return fmt.Errorf(errFailedDeleteAPIKeyFmt, err) }

	errFailedCreateFile = func(err error) error { return fmt.Errorf(errFailedCreateFileFmt, err) }
	errFailedGetFile    = func(err error) error { return fmt.Errorf(errFailedGetFileFmt, err) }
	errFailedListFiles  = func(err error) error { return fmt.Errorf(errFailedListFilesFmt, err) }
	errFailedScanFile   = func(err error) error { return fmt.Errorf(errFailedScanFileFmt, err) }
	errFailedDeleteFile = func(err error) error { return fmt.Errorf(errFailedDeleteFileFmt, err) }
	errFailedGetStats   = func(err error) error { return fmt.Errorf(errFailedGetStatsFmt, err) }
)
