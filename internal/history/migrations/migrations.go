// Package migrations embeds the SQL migration files for the Postgres
// history backend, for use with golang-migrate's iofs source driver.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
