// Package xs reads XS script files and prepares them for script-call
// conditions.
//
// A function file holds one function per block, blocks separated by two
// blank lines (DefaultSeparator). Each block is cleaned before import: doc,
// block and line comments are removed, indentation and newlines are dropped,
// and the spacing around "||" and after commas is collapsed.
package xs

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultSeparator separates function blocks in a function file.
const DefaultSeparator = "\n\n\n"

var (
	docComment   = regexp.MustCompile(`(?s)/\*\*(.*?)\*/`)
	blockComment = regexp.MustCompile(`(?s)/\*(.*?)\*/`)
	lineComment  = regexp.MustCompile(`//.*`)
)

// ReadFile returns the text of an XS file. A UTF-8 or UTF-16 byte order mark
// is honoured and removed, and CRLF line endings are converted to LF.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open xs file: %w", err)
	}
	defer f.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(f, decoder))
	if err != nil {
		return "", fmt.Errorf("read xs file %s: %w", path, err)
	}

	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// LoadConstants returns the whole text of a constants file.
func LoadConstants(path string) (string, error) {
	return ReadFile(path)
}

// LoadFunctions reads a function file and returns its cleaned blocks.
func LoadFunctions(path, sep string) ([]string, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitFunctions(text, sep), nil
}

// SplitFunctions splits text on sep and cleans every block. Blocks that are
// empty after cleaning are dropped. An empty sep means DefaultSeparator.
func SplitFunctions(text, sep string) []string {
	if sep == "" {
		sep = DefaultSeparator
	}

	var out []string
	for _, block := range strings.Split(text, sep) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if cleaned := Clean(block); strings.TrimSpace(cleaned) != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// Clean strips comments and whitespace from a single function block.
// Replacements run in sequence, so their order matters.
func Clean(block string) string {
	s := docComment.ReplaceAllString(block, "")
	s = blockComment.ReplaceAllString(s, "")
	s = lineComment.ReplaceAllString(s, "")

	for _, r := range [][2]string{
		{"    ", ""},
		{" || ", "||"},
		{"\t", ""},
		{", ", ","},
		{"\n", ""},
	} {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return s
}
