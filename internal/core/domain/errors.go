package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrConfigNotFound is returned when no schemagen.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find schemagen.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidGoal is returned when the configured goal is unknown.
	ErrInvalidGoal = zerr.New("invalid goal, expected 'create', 'update' or 'drop'")

	// ErrConfigurationMissing is returned when the merged configuration holds no properties at all.
	ErrConfigurationMissing = zerr.New("persistence configuration is missing")

	// ErrPropertiesReadFailed is returned when an explicitly configured properties source cannot be read.
	ErrPropertiesReadFailed = zerr.New("failed to read persistence properties")

	// ErrDigestFailed is returned when a stream cannot be fingerprinted.
	ErrDigestFailed = zerr.New("failed to compute fingerprint")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrLedgerReadFailed is returned when the persisted ledger cannot be read.
	ErrLedgerReadFailed = zerr.New("failed to read ledger")

	// ErrLedgerCorrupt is returned when the persisted ledger cannot be decoded.
	ErrLedgerCorrupt = zerr.New("ledger snapshot is corrupt")

	// ErrLedgerVersionUnsupported is returned when the ledger was written by an incompatible format version.
	ErrLedgerVersionUnsupported = zerr.New("unsupported ledger format version")

	// ErrLedgerWriteFailed is returned when the ledger cannot be persisted.
	ErrLedgerWriteFailed = zerr.New("failed to write ledger")

	// ErrClassNotFound is returned when no classpath root contains the requested class.
	ErrClassNotFound = zerr.New("class not found on classpath")

	// ErrResourceNotFound is returned when no classpath root contains the requested resource.
	ErrResourceNotFound = zerr.New("resource not found on classpath")

	// ErrResolverClosed is returned when a closed resolver is asked to open an entry.
	ErrResolverClosed = zerr.New("class resolver is closed")

	// ErrArchiveOpenFailed is returned when a classpath archive cannot be opened.
	ErrArchiveOpenFailed = zerr.New("failed to open classpath archive")

	// ErrInvalidClassFile is returned when a class file cannot be parsed.
	ErrInvalidClassFile = zerr.New("invalid class file")

	// ErrArtifactUnreadable is returned when a required mapping artifact cannot be read or fingerprinted.
	ErrArtifactUnreadable = zerr.New("failed to read mapping artifact")

	// ErrMappingFileNotFound is returned when an explicitly configured mapping file cannot be located.
	ErrMappingFileNotFound = zerr.New("mapping file could not be found in any of the configured resource directories")

	// ErrMappingFileIsDirectory is returned when an explicitly configured mapping file is a directory.
	ErrMappingFileIsDirectory = zerr.New("mapping file is a directory")

	// ErrScriptPrepareFailed is returned when the output script cannot be created or truncated.
	ErrScriptPrepareFailed = zerr.New("failed to prepare output script")

	// ErrSchemaEngineFailed is returned when the external schema engine fails.
	ErrSchemaEngineFailed = zerr.New("schema engine failed")

	// ErrSchemaEngineNotConfigured is returned when generation is required but no engine command is set.
	ErrSchemaEngineNotConfigured = zerr.New("no schema engine command configured")

	// ErrSchemaReportInvalid is returned when the engine's report cannot be decoded.
	ErrSchemaReportInvalid = zerr.New("invalid schema engine report")

	// ErrDatabaseConnectFailed is returned when the script executor cannot reach the database.
	ErrDatabaseConnectFailed = zerr.New("failed to connect to database")

	// ErrUnsupportedDatabaseURL is returned when a connection URL cannot be translated.
	ErrUnsupportedDatabaseURL = zerr.New("unsupported database url")

	// ErrCleanFailed is returned when removing generator state fails.
	ErrCleanFailed = zerr.New("failed to remove generator state")
)

// Classify ties cause to the sentinel kind so that errors.Is matches both.
func Classify(kind, cause error) error {
	return fmt.Errorf("%w: %w", kind, cause)
}
