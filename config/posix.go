package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// keyValue matches KEY=value lines with optional quotes and a trailing comment.
var keyValue = regexp.MustCompile(`^\s*(\w+)\s*=\s*["']?(.*?)["']?\s*(#.*)?$`)

// Parse reads a POSIX config stream (key=value, no sections).
// Lines that don't match are skipped; later keys override earlier ones.
func Parse(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := keyValue.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		values[m[1]] = m[2]
	}
	return values, scanner.Err()
}

// ParseFile reads a POSIX config file. A missing file returns an empty map and
// an error satisfying os.IsNotExist.
func ParseFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return map[string]string{}, err
	}
	defer f.Close()
	return Parse(f)
}

// DistribID returns the distribution id from /etc/os-release or /etc/lsb-release.
func DistribID() string {
	return distribID("/etc/*release")
}

func distribID(pattern string) string {
	matches, _ := filepath.Glob(pattern)
	id := ""
	for _, f := range matches {
		values, err := ParseFile(f)
		if err != nil {
			continue
		}
		if v := values["ID"]; v != "" {
			id = v
		} else if v := values["DISTRIB_ID"]; v != "" {
			id = v
		}
		if id != "" {
			break
		}
	}
	return id
}
