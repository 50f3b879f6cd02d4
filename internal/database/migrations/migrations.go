package migrations

import "embed"

// Migrations — SQL-файлы миграций схемы, встраиваемые в бинарник.
// Читаются мигратором через источник iofs.
//
//go:embed *.sql
var Migrations embed.FS
