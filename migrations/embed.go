// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in internal/schema, which backs juicectl and
// the integration test setup.
//
// One table per migration: goose applies them in version order (parents
// first) and rolls them back in reverse (children first).
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
