// Package all registers every storage backend via blank imports. Binaries
// that load reports import it for side effects only.
package all

import (
	_ "salespipe/internal/storage/mysql"
	_ "salespipe/internal/storage/postgres"
	_ "salespipe/internal/storage/sqlite"
)
