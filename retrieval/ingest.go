package retrieval

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadDocuments walks root and indexes every .txt and .md file into the
// knowledge base. Dot-files and dot-directories are skipped. The first
// non-empty line of a file becomes the document title, the relative path its
// source, and each blank-line-separated paragraph one chunk. Returns the
// number of chunks added.
func LoadDocuments(ctx context.Context, kb *KnowledgeBase, root string) (int, error) {
	added := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return fs.SkipAll
			}
			return err
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read document %s: %w", path, err)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		source := filepath.ToSlash(rel)

		title, chunks := splitDocument(string(data))
		if title == "" {
			title = source
		}

		for _, chunk := range chunks {
			if err := kb.Add(ctx, title, source, chunk); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return added, fmt.Errorf("failed to load documents from %s: %w", root, err)
	}

	return added, nil
}

// splitDocument extracts the title from the first non-empty line and splits
// the remainder into paragraph chunks.
func splitDocument(text string) (string, []string) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	title := ""
	rest := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(strings.TrimLeft(line, "# "))
		if trimmed != "" {
			title = trimmed
			rest = i + 1
			break
		}
	}

	var chunks []string
	for _, para := range strings.Split(strings.Join(lines[rest:], "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			chunks = append(chunks, para)
		}
	}
	return title, chunks
}
