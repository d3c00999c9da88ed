// Package migrations embeds the dashboard schema migrations.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
