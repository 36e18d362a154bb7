// Package db embeds the goose migrations for the trivia schema.
package db

import "embed"

// Migrations holds the SQL files under migrations/, rooted at "migrations".
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory name inside Migrations.
const MigrationsDir = "migrations"
