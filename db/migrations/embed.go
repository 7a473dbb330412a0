package migrations

import "embed"

// FS holds one goose migration set per supported dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
