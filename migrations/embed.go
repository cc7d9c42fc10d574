package migrations

import "embed"

// Files guarda las migraciones SQL (sólo hacia adelante) embebidas en el binario.
//
//go:embed *.sql
var Files embed.FS
