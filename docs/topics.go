// Package docs holds the user manual of fin, one markdown file per topic.
//
// readme.md is the entry point: it lists every topic as "* name: description".
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// index is the topic holding the list of topics.
const index = "readme"

// All stands for every topic in Read.
const All = "*"

// Topic is an entry of the manual index.
type Topic struct {
	Name        string
	Description string
}

var indexLine = regexp.MustCompile(`^\*\s+([^:]+):\s*(.*)$`)

// Index returns the topics listed in readme.md, in order.
func Index() ([]Topic, error) {
	content, err := files.ReadFile(index + ".md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		if m := indexLine.FindStringSubmatch(scanner.Text()); m != nil {
			topics = append(topics, Topic{Name: strings.TrimSpace(m[1]), Description: m[2]})
		}
	}
	return topics, scanner.Err()
}

// Names returns the name of every topic file but the index, sorted.
func Names() ([]string, error) {
	paths, err := fs.Glob(files, "*.md")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, p := range paths {
		if name := strings.TrimSuffix(p, ".md"); name != index {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Read returns the content of the named topics, one after the other.
// Without names it returns the index.
func Read(names ...string) (string, error) {
	if len(names) == 0 {
		names = []string{index}
	}
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == All {
			all, err := Names()
			if err != nil {
				return "", err
			}
			expanded = all
		}
		for _, n := range expanded {
			content, err := files.ReadFile(n + ".md")
			if err != nil {
				return "", fmt.Errorf("topic %q not found", n)
			}
			b.Write(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
