package expenses

import (
	"database/sql"

	"github.com/Mendozape/crud-sub000/app/models"
)

func GetAllExpenses(db *sql.DB) ([]*models.Expense, error) {
	query := `SELECT e.id, e.category_id, e.title, e.amount, e.date, COALESCE(e.notes, ''),
			  e.created_at, e.updated_at, c.id, c.name
			  FROM expenses e
			  LEFT JOIN categories c ON e.category_id = c.id
			  WHERE e.deleted_at IS NULL
			  ORDER BY e.date DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	for rows.Next() {
		e := &models.Expense{}
		var catID, catName sql.NullString
		err := rows.Scan(
			&e.ID, &e.CategoryID, &e.Title, &e.Amount, &e.Date, &e.Notes,
			&e.CreatedAt, &e.UpdatedAt, &catID, &catName,
		)
		if err != nil {
			return nil, err
		}
		if catID.Valid {
			e.Category = &models.ExpenseCategory{ID: catID.String, Name: catName.String}
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func CreateExpense(db *sql.DB, e *models.Expense) error {
	query := `INSERT INTO expenses (category_id, title, amount, date, notes)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, e.CategoryID, e.Title, e.Amount, e.Date, e.Notes).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func UpdateExpense(db *sql.DB, e *models.Expense) (int64, error) {
	query := `UPDATE expenses
			  SET category_id = $1, title = $2, amount = $3, date = $4, notes = NULLIF($5, ''), updated_at = NOW()
			  WHERE id = $6 AND deleted_at IS NULL`
	result, err := db.Exec(query, e.CategoryID, e.Title, e.Amount, e.Date, e.Notes, e.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func SoftDeleteExpense(db *sql.DB, id, reason, actorID string) (int64, error) {
	query := `UPDATE expenses
			  SET deleted_at = NOW(), deletion_reason = $1, deleted_by = $2, updated_at = NOW()
			  WHERE id = $3 AND deleted_at IS NULL`
	result, err := db.Exec(query, reason, actorID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func GetAllCategories(db *sql.DB) ([]*models.ExpenseCategory, error) {
	rows, err := db.Query(`SELECT id, name, is_active, created_at, updated_at
						   FROM categories WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.ExpenseCategory{}
	for rows.Next() {
		cat := &models.ExpenseCategory{}
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func CreateCategory(db *sql.DB, cat *models.ExpenseCategory) error {
	cat.IsActive = true
	return db.QueryRow(`INSERT INTO categories (name, is_active) VALUES ($1, true)
						RETURNING id, created_at, updated_at`, cat.Name).
		Scan(&cat.ID, &cat.CreatedAt, &cat.UpdatedAt)
}

func UpdateCategory(db *sql.DB, cat *models.ExpenseCategory) (int64, error) {
	result, err := db.Exec(`UPDATE categories SET name = $1, is_active = $2, updated_at = NOW()
							WHERE id = $3 AND deleted_at IS NULL`, cat.Name, cat.IsActive, cat.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CategoryReferenced reports whether any live expense still uses the category.
func CategoryReferenced(db *sql.DB, categoryID string) (bool, error) {
	var referenced bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM expenses WHERE category_id = $1 AND deleted_at IS NULL)`, categoryID).
		Scan(&referenced)
	return referenced, err
}

func SoftDeleteCategory(db *sql.DB, id string) (int64, error) {
	result, err := db.Exec(`UPDATE categories SET deleted_at = NOW(), updated_at = NOW()
							WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
