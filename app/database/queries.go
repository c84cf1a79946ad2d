package database

import (
	"database/sql"
	"fmt"

	"github.com/Mendozape/crud-sub000/app/models"
)

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, COALESCE(phone, ''), property_id, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.PropertyID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, COALESCE(phone, ''), property_id, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.PropertyID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `SELECT r.id, r.name, r.is_active, r.created_at, r.updated_at
			  FROM roles r
			  JOIN user_roles ur ON r.id = ur.role_id
			  WHERE ur.user_id = $1 AND r.deleted_at IS NULL`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.IsActive, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// UserHasPermission checks whether any of the user's roles grants the named
// permission. Used by the route-level capability gate.
func UserHasPermission(db *sql.DB, userID, permission string) (bool, error) {
	query := `SELECT EXISTS (
				SELECT 1
				FROM user_roles ur
				JOIN role_permissions rp ON rp.role_id = ur.role_id
				JOIN permissions p ON p.id = rp.permission_id
				JOIN roles r ON r.id = ur.role_id
				WHERE ur.user_id = $1 AND p.name = $2
				  AND r.is_active = true AND r.deleted_at IS NULL AND p.deleted_at IS NULL
			  )`

	var ok bool
	if err := db.QueryRow(query, userID, permission).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// CreateUser inserts a user (password already hashed) and optionally assigns
// a role, in one transaction.
func CreateUser(db *sql.DB, user *models.User, roleName string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO users (email, password, first_name, last_name, phone, property_id)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
			  RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query, user.Email, user.Password, user.FirstName, user.LastName, user.Phone, user.PropertyID).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}

	if roleName != "" {
		_, err = tx.Exec(`INSERT INTO user_roles (user_id, role_id)
						  SELECT $1, id FROM roles WHERE name = $2
						  ON CONFLICT DO NOTHING`, user.ID, roleName)
		if err != nil {
			return fmt.Errorf("failed to assign role: %v", err)
		}
	}

	return tx.Commit()
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}
