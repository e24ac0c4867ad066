package db

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	embeddedmigrations "github.com/terraincognita07/cyclecast/migrations"
	"gorm.io/gorm"
)

var addColumnPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)

type schemaMigration struct {
	Version  int
	Name     string
	Checksum string
	SQL      string
}

type appliedMigration struct {
	Version  int    `gorm:"column:version"`
	Checksum string `gorm:"column:checksum"`
}

type migrator struct {
	database *gorm.DB
	files    fs.FS
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	return migrator{database: database, files: embeddedmigrations.Files}.run()
}

func (m migrator) run() error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  checksum TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
	if err := m.database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := m.load()
	if err != nil {
		return err
	}

	var rows []appliedMigration
	if err := m.database.Raw(`SELECT version, checksum FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}
	applied := make(map[int]string, len(rows))
	for _, row := range rows {
		applied[row.Version] = row.Checksum
	}

	for _, migration := range pending {
		if checksum, ok := applied[migration.Version]; ok {
			if checksum != migration.Checksum {
				log.Warn().
					Str("component", "migrations").
					Str("migration", migration.Name).
					Msg("applied migration differs from embedded file")
			}
			continue
		}
		if err := m.apply(migration); err != nil {
			return err
		}
		log.Info().Str("component", "migrations").Str("migration", migration.Name).Msg("migration applied")
	}
	return nil
}

// load returns the NNN_name.sql files ordered by version.
func (m migrator) load() ([]schemaMigration, error) {
	names, err := fs.Glob(m.files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(names))
	seen := make(map[int]string, len(names))
	for _, name := range names {
		prefix, _, found := strings.Cut(name, "_")
		if !found {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		if previous, duplicate := seen[version]; duplicate {
			return nil, fmt.Errorf("duplicate migration version %d in %s and %s", version, previous, name)
		}
		seen[version] = name

		raw, err := fs.ReadFile(m.files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		sum := sha256.Sum256(raw)
		migrations = append(migrations, schemaMigration{
			Version:  version,
			Name:     name,
			Checksum: hex.EncodeToString(sum[:]),
			SQL:      string(raw),
		})
	}

	slices.SortFunc(migrations, func(a, b schemaMigration) int {
		return a.Version - b.Version
	})
	return migrations, nil
}

func (m migrator) apply(migration schemaMigration) error {
	statements := splitSQLStatements(migration.SQL)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s has no SQL statements", migration.Name)
	}

	return m.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if table, column, ok := addedColumn(statement); ok {
				exists, err := tableColumnExists(tx, table, column)
				if err != nil {
					return fmt.Errorf("inspect migration %s: %w", migration.Name, err)
				}
				if exists {
					continue
				}
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.Name, statement, err)
			}
		}

		return tx.Exec(
			`INSERT INTO schema_migrations(version, name, checksum) VALUES (?, ?, ?)`,
			migration.Version, migration.Name, migration.Checksum,
		).Error
	})
}

// splitSQLStatements drops "--" comment lines and splits on semicolons.
func splitSQLStatements(sqlText string) []string {
	var body strings.Builder
	for line := range strings.Lines(sqlText) {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		body.WriteString(line)
	}

	var statements []string
	for part := range strings.SplitSeq(body.String(), ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func addedColumn(statement string) (string, string, bool) {
	matches := addColumnPattern.FindStringSubmatch(statement)
	if matches == nil {
		return "", "", false
	}
	return unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2]), true
}

func tableColumnExists(database *gorm.DB, table string, column string) (bool, error) {
	if !database.Migrator().HasTable(table) {
		return false, fmt.Errorf("table %s does not exist", table)
	}
	return database.Migrator().HasColumn(table, column), nil
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(identifier, "\"`[]")
}
