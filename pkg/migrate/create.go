package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	versionLayout    = "20060102150405"
	maxMigrationName = 64
)

var (
	nameSanitizeRe  = regexp.MustCompile(`[^a-z0-9_]+`)
	migrationNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// migrationName turns free text ("Add Refund Reason!") into the snake_case
// suffix used in filenames.
func migrationName(name string) (string, error) {
	safe := strings.ToLower(strings.TrimSpace(name))
	safe = strings.ReplaceAll(safe, " ", "_")
	safe = nameSanitizeRe.ReplaceAllString(safe, "_")
	safe = strings.Trim(safe, "_")
	switch {
	case safe == "":
		return "", fmt.Errorf("name %q results in empty sanitized filename", name)
	case len(safe) > maxMigrationName:
		return "", fmt.Errorf("name %q is longer than %d characters once sanitized", name, maxMigrationName)
	case !migrationNameRe.MatchString(safe):
		return "", fmt.Errorf("name %q must start with a letter", name)
	}
	return safe, nil
}

// CreateSQLMigration writes <dir>/<YYYYMMDDHHMMSS>_<name>.sql with empty Up
// and Down sections. When another migration already owns the current second
// the version moves forward until it is free.
func CreateSQLMigration(dir string, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	safe, err := migrationName(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	taken, err := existingVersions(dir)
	if err != nil {
		return "", err
	}
	at := time.Now().UTC()
	for taken[at.Format(versionLayout)] {
		at = at.Add(time.Second)
	}
	version := at.Format(versionLayout)
	fullpath := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", version, safe))

	body := fmt.Sprintf(`-- orderview migration %s: %s
-- Runs on postgres and sqlite3; keep statements portable.

-- +goose Up
-- +goose StatementBegin
-- %s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- rollback %s
-- +goose StatementEnd
`, version, safe, safe, safe)

	// O_EXCL so a concurrent create never overwrites.
	f, err := os.OpenFile(fullpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create migration %q: %w", fullpath, err)
	}
	if _, err := f.WriteString(body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write migration %q: %w", fullpath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close migration %q: %w", fullpath, err)
	}
	return fullpath, nil
}

func existingVersions(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}
	versions := make(map[string]bool, len(entries))
	for _, e := range entries {
		if m := sqlFileRe.FindStringSubmatch(e.Name()); m != nil {
			versions[m[1]] = true
		}
	}
	return versions, nil
}
