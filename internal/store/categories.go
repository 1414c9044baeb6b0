package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateCategory(name, color string) (*Category, error) {
	res, err := s.db.Exec(
		`INSERT INTO categories (name, color, created_at) VALUES (?, ?, ?)`,
		name, color, s.stamp(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetCategory(id)
}

func (s *Store) GetCategory(id int64) (*Category, error) {
	c := &Category{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, name, color, created_at FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Color, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return c, nil
}

func (s *Store) ListCategories() ([]Category, error) {
	rows, err := s.db.Query(`SELECT id, name, color, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		var c Category
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *Store) UpdateCategory(id int64, name, color string) error {
	_, err := s.db.Exec(`UPDATE categories SET name = ?, color = ? WHERE id = ?`, name, color, id)
	return err
}

// DeleteCategory removes a category. Its tasks become uncategorized.
func (s *Store) DeleteCategory(id int64) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
