package retrieval

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	_ "github.com/mattn/go-sqlite3"
)

// KnowledgeBase is a Gateway backed by a SQLite chunk store. Ranking is
// lexical: chunks are scored by normalized-token overlap with the query.
// Embedding-based search can replace this behind the same Gateway contract.
type KnowledgeBase struct {
	db *sql.DB
}

// Open opens (or creates) the knowledge base at the given path, ensuring the
// parent directory exists and the schema is in place.
func Open(path string) (*KnowledgeBase, error) {
	if dir := filepath.Dir(path); dir != "" && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open db at %s: %w", path, err)
	}

	// SQLite allows one writer, and every pooled connection to :memory: is a
	// separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db at %s: %w", path, err)
	}

	kb := &KnowledgeBase{db: db}
	if err := kb.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return kb, nil
}

func (kb *KnowledgeBase) initSchema() error {
	_, err := kb.db.Exec(`
		CREATE TABLE IF NOT EXISTS chunks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			terms TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (unixepoch())
		);
		CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source);
	`)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (kb *KnowledgeBase) Close() error {
	return kb.db.Close()
}

// Add indexes one chunk of a document.
func (kb *KnowledgeBase) Add(ctx context.Context, title, source, content string) error {
	terms := tokenize(content + " " + title)
	_, err := kb.db.ExecContext(ctx,
		`INSERT INTO chunks (title, source, content, terms) VALUES (?, ?, ?, ?)`,
		title, source, content, strings.Join(terms, " "),
	)
	if err != nil {
		return fmt.Errorf("failed to add chunk from %s: %w", source, err)
	}
	return nil
}

// ChunkCount reports the number of indexed chunks. Errors count as an empty
// index: the caller only uses this to decide whether a Search is worth making.
func (kb *KnowledgeBase) ChunkCount() int {
	var n int
	if err := kb.db.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Search returns up to topK chunks ranked by token overlap with the query.
// Ties break on insertion order.
func (kb *KnowledgeBase) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	queryTerms := tokenize(query)
	if len(queryTerms) == 0 || topK <= 0 {
		return nil, nil
	}

	// Prefilter in SQL: any chunk sharing at least one term.
	conds := make([]string, len(queryTerms))
	args := make([]any, len(queryTerms))
	for i, term := range queryTerms {
		conds[i] = "' ' || terms || ' ' LIKE ?"
		args[i] = "% " + term + " %"
	}

	rows, err := kb.db.QueryContext(ctx,
		`SELECT id, title, source, content, terms FROM chunks WHERE `+strings.Join(conds, " OR "),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	type scored struct {
		id     int64
		score  int
		result Result
	}

	var candidates []scored
	for rows.Next() {
		var (
			id                           int64
			title, source, content, term string
		)
		if err := rows.Scan(&id, &title, &source, &content, &term); err != nil {
			return nil, fmt.Errorf("search scan failed: %w", err)
		}

		chunkTerms := make(map[string]bool)
		for _, t := range strings.Fields(term) {
			chunkTerms[t] = true
		}

		score := 0
		for _, t := range queryTerms {
			if chunkTerms[t] {
				score++
			}
		}
		if score == 0 {
			continue
		}

		candidates = append(candidates, scored{
			id:    id,
			score: score,
			result: Result{
				Title:  title,
				Source: source,
				Text:   content,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search rows failed: %w", err)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	results := make([]Result, len(candidates))
	for i, c := range candidates {
		results[i] = c.result
	}
	return results, nil
}

// accentFolder maps Spanish accented vowels onto their base form so queries
// match regardless of accent use. Ñ is intentionally preserved.
var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
)

// tokenize normalizes text into lowercase accent-folded terms, dropping
// tokens shorter than three runes.
func tokenize(text string) []string {
	folded := accentFolder.Replace(strings.ToLower(text))

	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	seen := make(map[string]bool)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 3 || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	return terms
}
