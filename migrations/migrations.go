// README: SQL migrations embedded into the binary, applied in file-name order.
package migrations

import "embed"

// Files exposes every SQL migration file.
//
//go:embed *.sql
var Files embed.FS
