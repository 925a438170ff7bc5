package migrations

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// File is one embedded migration with its statements ready to execute.
type File struct {
	Name       string
	Statements []string
}

// PostgresFiles returns the embedded PostgreSQL migrations in lexical order.
// Each file is one statement batch; PostgreSQL accepts multiquery Exec.
func PostgresFiles() ([]File, error) {
	return readFiles(PostgresFS, "postgres", false)
}

// ClickhouseFiles returns the embedded ClickHouse migrations in lexical
// order, split into individual statements; the ClickHouse driver doesn't
// support multiquery in Exec.
func ClickhouseFiles() ([]File, error) {
	return readFiles(ClickhouseFS, "clickhouse", true)
}

func readFiles(fsys fs.FS, dir string, split bool) ([]File, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s migrations: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var files []File
	for _, name := range names {
		data, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		content := string(data)
		if strings.TrimSpace(content) == "" {
			continue
		}
		file := File{Name: name}
		if split {
			if err := validateNoSemicolonInStrings(content); err != nil {
				return nil, fmt.Errorf("validate migration %s: %w", name, err)
			}
			file.Statements = splitStatements(content)
		} else {
			file.Statements = []string{content}
		}
		files = append(files, file)
	}
	return files, nil
}

// splitStatements splits SQL content into individual statements by semicolon.
//
// IMPORTANT CONSTRAINT: This splitter is intentionally simple and does NOT handle:
//   - Semicolons inside string literals (e.g., 'foo;bar')
//   - Semicolons inside inline comments (e.g., /* foo; bar */)
//   - Dollar-quoted strings
//
// All ClickHouse migrations MUST follow these rules:
//  1. No semicolons inside string literals
//  2. Use -- style comments only (not /* */ with semicolons)
//  3. Each statement ends with a semicolon on its own line or at end of statement
//
// This constraint is validated at migration time - see validateNoSemicolonInStrings.
func splitStatements(input string) []string {
	var filtered []string
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		filtered = append(filtered, line)
	}
	joined := strings.Join(filtered, "\n")

	var stmts []string
	for _, part := range strings.Split(joined, ";") {
		stmt := strings.TrimSpace(part)
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// validateNoSemicolonInStrings checks that SQL doesn't contain semicolons inside
// single-quoted strings, which would break our simple statement splitter.
// Returns an error if a dangerous pattern is detected.
func validateNoSemicolonInStrings(sql string) error {
	inString := false
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		if ch == '\'' {
			// Handle escaped quotes ''
			if i+1 < len(sql) && sql[i+1] == '\'' {
				i++ // skip next quote
				continue
			}
			inString = !inString
		} else if ch == ';' && inString {
			return fmt.Errorf("semicolon found inside string literal - this breaks the migration splitter")
		}
	}
	return nil
}
