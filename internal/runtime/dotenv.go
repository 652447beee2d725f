// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadEnvFile loads a dotenv file and merges its contents into env. Relative
// paths resolve against basePath (the job file directory). A trailing '?'
// marks the file optional: a missing optional file is not an error. Later
// loads override earlier values for the same keys.
func LoadEnvFile(env map[string]string, path, basePath string) error {
	return loadEnvFile(env, path, func(p string) string {
		return filepath.Join(basePath, filepath.FromSlash(p))
	})
}

// LoadEnvFileFromCwd loads a dotenv file given on the command line via
// --env-file. Relative paths resolve against cwd; when cwd is empty,
// os.Getwd() is used. The '?' optional suffix applies here too.
func LoadEnvFileFromCwd(env map[string]string, path, cwd string) error {
	return loadEnvFile(env, path, func(p string) string {
		base := cwd
		if base == "" {
			base, _ = os.Getwd()
		}
		return filepath.Join(base, p)
	})
}

func loadEnvFile(env map[string]string, path string, resolve func(string) string) error {
	optional := strings.HasSuffix(path, "?")
	if optional {
		path = strings.TrimSuffix(path, "?")
	}

	fullPath := path
	if !filepath.IsAbs(path) {
		fullPath = resolve(path)
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read env file '%s': %w", path, err)
	}

	return ParseEnvFile(env, content, path)
}

// ParseEnvFile parses dotenv content and merges it into env. Supported:
//   - '#' comment lines and blank lines
//   - KEY=value (unquoted; trailing ' #' comments stripped)
//   - KEY="value" (double-quoted; \n \r \t \\ \" \$ escapes)
//   - KEY='value' (single-quoted, literal)
//   - optional 'export ' prefix
//   - KEY= (empty value)
//
// filename is used for error messages only.
func ParseEnvFile(env map[string]string, content []byte, filename string) error {
	for i, line := range strings.Split(string(content), "\n") {
		lineNum := i + 1

		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%s:%d: invalid format (missing '=')", filename, lineNum)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%s:%d: empty variable name", filename, lineNum)
		}

		parsed, err := parseEnvValue(value)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", filename, lineNum, err)
		}
		env[key] = parsed
	}
	return nil
}

func parseEnvValue(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	switch value[0] {
	case '"':
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", fmt.Errorf("unterminated double quote")
		}
		return unescapeDoubleQuoted(value[1 : len(value)-1]), nil
	case '\'':
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", fmt.Errorf("unterminated single quote")
		}
		return value[1 : len(value)-1], nil
	}

	// Unquoted: strip an inline comment.
	if idx := strings.Index(value, " #"); idx != -1 {
		value = strings.TrimSpace(value[:idx])
	}
	return value, nil
}

func unescapeDoubleQuoted(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i+1 >= len(value) {
			b.WriteByte(value[i])
			continue
		}
		i++
		switch value[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\', '"', '$':
			b.WriteByte(value[i])
		default:
			// Unknown escape: keep both characters.
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}
	return b.String()
}
