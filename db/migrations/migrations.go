package migrations

import "embed"

// FS embeds the SQL migrations for the ad store. golang-migrate reads
// them through the iofs driver when applying migrations.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version Migrate targets.
const Version = 1
