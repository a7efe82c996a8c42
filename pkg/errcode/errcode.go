package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Taxonomy registry errors
	RegistryUnavailableError
	RegistryParseError
	RegistryClosureError

	// Repository errors
	RepoQueryError
	RepoCreateError
	RepoUpdateError

	// Ingest errors
	IngestFileReadError
	IngestFileParseError

	// Export errors
	ExportDirError
	ExportQueryError
	ExportWriteError
)
