package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tk-labels/internal/domain/entity"
	"tk-labels/internal/repository"
)

// NodeRepo reads content nodes and their field values from the nodes tables.
type NodeRepo struct{ db querier }

// NewNodeRepo returns a NodeRepository backed by db.
func NewNodeRepo(db querier) repository.NodeRepository {
	return &NodeRepo{db: db}
}

func (repo *NodeRepo) Get(ctx context.Context, id int64) (*entity.Node, error) {
	const query = `
SELECT id, type, title
FROM nodes
WHERE id = $1
LIMIT 1`
	node := &entity.Node{Fields: entity.Fields{}}
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&node.ID, &node.Type, &node.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	if err := repo.loadFields(ctx, node); err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if err := repo.loadTerms(ctx, node); err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return node, nil
}

func (repo *NodeRepo) loadFields(ctx context.Context, node *entity.Node) error {
	const query = `
SELECT field_name, value, uri
FROM node_fields
WHERE node_id = $1
ORDER BY field_name, delta`
	rows, err := repo.db.QueryContext(ctx, query, node.ID)
	if err != nil {
		return fmt.Errorf("load fields: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		var item entity.FieldItem
		if err := rows.Scan(&name, &item.Value, &item.URI); err != nil {
			return fmt.Errorf("scan field: %w", err)
		}
		node.Fields[name] = append(node.Fields[name], item)
	}
	return rows.Err()
}

// loadTerms attaches referenced taxonomy terms in reference order, each with its own fields.
func (repo *NodeRepo) loadTerms(ctx context.Context, node *entity.Node) error {
	const termQuery = `
SELECT t.id, t.vocabulary, t.name
FROM node_terms nt
JOIN terms t ON t.id = nt.term_id
WHERE nt.node_id = $1
ORDER BY nt.delta, t.id`
	rows, err := repo.db.QueryContext(ctx, termQuery, node.ID)
	if err != nil {
		return fmt.Errorf("load terms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byID := make(map[int64]*entity.Term)
	terms := make([]*entity.Term, 0, 4)
	for rows.Next() {
		term := &entity.Term{Fields: entity.Fields{}}
		if err := rows.Scan(&term.ID, &term.Vocabulary, &term.Name); err != nil {
			return fmt.Errorf("scan term: %w", err)
		}
		byID[term.ID] = term
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load terms: %w", err)
	}
	if len(terms) == 0 {
		return nil
	}

	const fieldQuery = `
SELECT tf.term_id, tf.field_name, tf.value, tf.uri
FROM term_fields tf
JOIN node_terms nt ON nt.term_id = tf.term_id
WHERE nt.node_id = $1
ORDER BY tf.term_id, tf.field_name, tf.delta`
	fieldRows, err := repo.db.QueryContext(ctx, fieldQuery, node.ID)
	if err != nil {
		return fmt.Errorf("load term fields: %w", err)
	}
	defer func() { _ = fieldRows.Close() }()

	for fieldRows.Next() {
		var termID int64
		var name string
		var item entity.FieldItem
		if err := fieldRows.Scan(&termID, &name, &item.Value, &item.URI); err != nil {
			return fmt.Errorf("scan term field: %w", err)
		}
		if term, ok := byID[termID]; ok {
			term.Fields[name] = append(term.Fields[name], item)
		}
	}
	if err := fieldRows.Err(); err != nil {
		return fmt.Errorf("load term fields: %w", err)
	}

	node.References = make([]entity.Referenceable, 0, len(terms))
	for _, term := range terms {
		node.References = append(node.References, term)
	}
	return nil
}
