package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"flowshow/internal/application"
	"flowshow/internal/domain"
	"flowshow/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// MemoryPath opens a private in-memory document
const MemoryPath = ":memory:"

// Applied by the driver to every pooled connection of a file document
const filePragmas = "?_pragma=journal_mode(WAL)" +
	"&_pragma=busy_timeout(5000)" +
	"&_pragma=synchronous(NORMAL)" +
	"&_pragma=temp_store(MEMORY)"

// Document implements ports.Document and ports.Host on a SQLite file.
// Node order is insertion order.
type Document struct {
	db   *sql.DB
	path string
}

// Ensure Document implements the document ports
var (
	_ ports.Document = (*Document)(nil)
	_ ports.Host     = (*Document)(nil)
)

// Open opens or creates the document at path
func Open(path string) (*Document, error) {
	if path == MemoryPath {
		return OpenMemory()
	}

	// Expand ~ in path
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+filePragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	d := &Document{db: db, path: path}
	if err := d.setup(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// OpenMemory creates a document that lives as long as the returned value
func OpenMemory() (*Document, error) {
	db, err := sql.Open("sqlite", MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// every connection would get its own empty database
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA temp_store = MEMORY`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure in-memory database: %w", err)
	}

	d := &Document{db: db, path: MemoryPath}
	if err := d.setup(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func (d *Document) setup() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			locked INTEGER NOT NULL DEFAULT 0,
			visible INTEGER NOT NULL DEFAULT 1
		);
		CREATE TABLE IF NOT EXISTS node_data (
			node_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (node_id, key)
		);
		CREATE TABLE IF NOT EXISTS document_data (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS selection (
			node_id TEXT PRIMARY KEY,
			position INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_kind ON nodes(kind);
	`)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}

	_, err = d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	if err != nil {
		return fmt.Errorf("failed to update metadata: %w", err)
	}
	return nil
}

// Path returns the database file, or MemoryPath
func (d *Document) Path() string {
	return d.path
}

// Close closes the database connection
func (d *Document) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

const nodeColumns = `id, kind, name, locked, visible`

func scanNodes(rows *sql.Rows) ([]domain.Node, error) {
	defer rows.Close()

	var nodes []domain.Node
	for rows.Next() {
		var n domain.Node
		var kind string
		if err := rows.Scan(&n.ID, &kind, &n.Name, &n.Locked, &n.Visible); err != nil {
			return nil, err
		}
		n.Kind = domain.ParseNodeKind(kind)
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// FindConnectors returns every connector in insertion order
func (d *Document) FindConnectors() ([]domain.Connector, error) {
	rows, err := d.db.Query(`SELECT `+nodeColumns+` FROM nodes WHERE kind = ? ORDER BY rowid`,
		domain.NodeKindConnector.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query connectors: %w", err)
	}
	nodes, err := scanNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan connectors: %w", err)
	}
	return domain.Connectors(nodes), nil
}

// Selection returns the selected nodes in selection order
func (d *Document) Selection() ([]domain.Node, error) {
	rows, err := d.db.Query(`
		SELECT n.id, n.kind, n.name, n.locked, n.visible
		FROM selection s
		JOIN nodes n ON n.id = s.node_id
		ORDER BY s.position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query selection: %w", err)
	}
	nodes, err := scanNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan selection: %w", err)
	}
	return nodes, nil
}

// NodeData reads a node-scoped entry; missing entries read as ""
func (d *Document) NodeData(nodeID, key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM node_data WHERE node_id = ? AND key = ?`, nodeID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read node data: %w", err)
	}
	return value, nil
}

// DocumentData reads a document-scoped entry
func (d *Document) DocumentData(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM document_data WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read document data: %w", err)
	}
	return value, true, nil
}

// SetNodeData writes a node-scoped entry. An empty value is stored as is.
func (d *Document) SetNodeData(nodeID, key, value string) error {
	if err := application.ValidateRequired("key", key); err != nil {
		return err
	}
	if err := d.requireNode(nodeID); err != nil {
		return err
	}
	_, err := d.db.Exec(`
		INSERT OR REPLACE INTO node_data (node_id, key, value)
		VALUES (?, ?, ?)
	`, nodeID, key, value)
	if err != nil {
		return fmt.Errorf("failed to write node data: %w", err)
	}
	return nil
}

// SetVisible shows or hides one node
func (d *Document) SetVisible(nodeID string, visible bool) error {
	return d.updateNode(nodeID, `UPDATE nodes SET visible = ? WHERE id = ?`, visible)
}

// SetDocumentData writes a document-scoped entry
func (d *Document) SetDocumentData(key, value string) error {
	if err := application.ValidateRequired("key", key); err != nil {
		return err
	}
	_, err := d.db.Exec(`INSERT OR REPLACE INTO document_data (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write document data: %w", err)
	}
	return nil
}

// ListNodes returns every node in insertion order
func (d *Document) ListNodes() ([]domain.Node, error) {
	rows, err := d.db.Query(`SELECT ` + nodeColumns + ` FROM nodes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	nodes, err := scanNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan nodes: %w", err)
	}
	return nodes, nil
}

// AddNode creates a visible, unlocked node with a fresh ID.
// An empty name defaults to the kind name.
func (d *Document) AddNode(kind domain.NodeKind, name string) (*domain.Node, error) {
	if kind == domain.NodeKindUnknown {
		return nil, &application.ValidationError{Field: "kind", Message: "unknown node kind"}
	}
	if name == "" {
		name = kind.String()
	}

	n := &domain.Node{
		ID:      uuid.NewString(),
		Kind:    kind,
		Name:    name,
		Visible: true,
	}
	_, err := d.db.Exec(`
		INSERT INTO nodes (`+nodeColumns+`)
		VALUES (?, ?, ?, ?, ?)
	`, n.ID, n.Kind.String(), n.Name, n.Locked, n.Visible)
	if err != nil {
		return nil, fmt.Errorf("failed to insert node: %w", err)
	}
	return n, nil
}

// RemoveNode deletes a node together with its data and selection entry
func (d *Document) RemoveNode(nodeID string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM nodes WHERE id = ?`, nodeID)
	if err != nil {
		return fmt.Errorf("failed to delete node: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("node %s: %w", nodeID, application.ErrNotFound)
	}
	if _, err := tx.Exec(`DELETE FROM node_data WHERE node_id = ?`, nodeID); err != nil {
		return fmt.Errorf("failed to delete node data: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM selection WHERE node_id = ?`, nodeID); err != nil {
		return fmt.Errorf("failed to update selection: %w", err)
	}
	return tx.Commit()
}

// SetLocked locks or unlocks a node
func (d *Document) SetLocked(nodeID string, locked bool) error {
	return d.updateNode(nodeID, `UPDATE nodes SET locked = ? WHERE id = ?`, locked)
}

// SetSelection replaces the selection. Duplicate IDs keep their first position.
func (d *Document) SetSelection(nodeIDs []string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM selection`); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	for i, id := range nodeIDs {
		var exists int
		err := tx.QueryRow(`SELECT 1 FROM nodes WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("node %s: %w", id, application.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check node: %w", err)
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO selection (node_id, position) VALUES (?, ?)`, id, i); err != nil {
			return fmt.Errorf("failed to select node: %w", err)
		}
	}
	return tx.Commit()
}

func (d *Document) updateNode(nodeID, query string, value bool) error {
	res, err := d.db.Exec(query, value, nodeID)
	if err != nil {
		return fmt.Errorf("failed to update node: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("node %s: %w", nodeID, application.ErrNotFound)
	}
	return nil
}

func (d *Document) requireNode(nodeID string) error {
	var exists int
	err := d.db.QueryRow(`SELECT 1 FROM nodes WHERE id = ?`, nodeID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("node %s: %w", nodeID, application.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check node: %w", err)
	}
	return nil
}
