// Package migrations embeds the schema migrations for every supported database driver.
package migrations

import "embed"

// FS holds one directory of golang-migrate files per driver
//
//go:embed postgres/*.sql mysql/*.sql sqlite/*.sql
var FS embed.FS
