package users

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/database"
	"github.com/Mendozape/crud-sub000/app/models"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func GetUsersAPI(c *fiber.Ctx, db *sql.DB) error {
	query := `SELECT id, email, first_name, last_name, COALESCE(phone, ''), property_id, is_active, created_at, updated_at
			  FROM users WHERE deleted_at IS NULL ORDER BY first_name, last_name`

	rows, err := db.Query(query)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch users")
	}
	defer rows.Close()

	list := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.PropertyID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read users")
		}
		list = append(list, u)
	}

	// attach roles per user; the list is short enough for N+1 here
	for _, u := range list {
		roles, err := database.GetUserRoles(db, u.ID)
		if err == nil {
			u.Roles = roles
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": list})
}

func GetUserAPI(c *fiber.Ctx, db *sql.DB) error {
	user, err := database.GetUserByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}

	roles, err := database.GetUserRoles(db, user.ID)
	if err == nil {
		user.Roles = roles
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}

func CreateUserAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateRequest struct {
		Email      string  `json:"email"`
		Password   string  `json:"password"`
		FirstName  string  `json:"first_name"`
		LastName   string  `json:"last_name"`
		Phone      string  `json:"phone"`
		PropertyID *string `json:"property_id"`
		Role       string  `json:"role"`
	}
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "email, first_name and last_name are required")
	}
	if len(req.Password) < 8 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Password must be at least 8 characters")
	}

	var exists bool
	if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`, req.Email).Scan(&exists); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check email")
	}
	if exists {
		return fiber.NewError(fiber.StatusConflict, "A user with this email already exists")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Email:      req.Email,
		Password:   hashed,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		PropertyID: req.PropertyID,
		IsActive:   true,
	}
	if err := database.CreateUser(db, user, req.Role); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user})
}

func UpdateUserAPI(c *fiber.Ctx, db *sql.DB) error {
	type UpdateRequest struct {
		FirstName  string  `json:"first_name"`
		LastName   string  `json:"last_name"`
		Phone      string  `json:"phone"`
		PropertyID *string `json:"property_id"`
		IsActive   *bool   `json:"is_active"`
	}
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.FirstName == "" || req.LastName == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "first_name and last_name are required")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	result, err := db.Exec(`UPDATE users
							SET first_name = $1, last_name = $2, phone = NULLIF($3, ''),
							    property_id = $4, is_active = $5, updated_at = NOW()
							WHERE id = $6 AND deleted_at IS NULL`,
		req.FirstName, req.LastName, req.Phone, req.PropertyID, isActive, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update user")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "User updated successfully"})
}

func DeleteUserAPI(c *fiber.Ctx, db *sql.DB) error {
	if c.Params("id") == c.Locals("user_id").(string) {
		return fiber.NewError(fiber.StatusConflict, "You cannot delete your own account")
	}

	result, err := db.Exec(`UPDATE users SET deleted_at = NOW(), is_active = false, updated_at = NOW()
							WHERE id = $1 AND deleted_at IS NULL`, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete user")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
}

// SetUserRolesAPI replaces the user's role set.
func SetUserRolesAPI(c *fiber.Ctx, db *sql.DB) error {
	type RolesRequest struct {
		RoleIDs []string `json:"role_ids"`
	}
	var req RolesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	userID := c.Params("id")

	tx, err := db.Begin()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update roles")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update roles")
	}
	for _, roleID := range req.RoleIDs {
		if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, roleID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update roles")
		}
	}

	if err := tx.Commit(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update roles")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Roles updated successfully"})
}

func GetRolesAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := db.Query(`SELECT id, name, is_active, created_at, updated_at FROM roles WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch roles")
	}
	defer rows.Close()

	roles := []*models.Role{}
	for rows.Next() {
		r := &models.Role{}
		if err := rows.Scan(&r.ID, &r.Name, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read roles")
		}
		roles = append(roles, r)
	}

	return c.JSON(fiber.Map{"success": true, "data": roles})
}

func CreateRoleAPI(c *fiber.Ctx, db *sql.DB) error {
	var r models.Role
	if err := c.BodyParser(&r); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "name is required")
	}

	err := db.QueryRow(`INSERT INTO roles (name) VALUES ($1) RETURNING id, is_active, created_at, updated_at`, r.Name).
		Scan(&r.ID, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, "A role with this name already exists")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": r})
}

// SetRolePermissionsAPI replaces a role's permission set.
func SetRolePermissionsAPI(c *fiber.Ctx, db *sql.DB) error {
	type PermissionsRequest struct {
		PermissionIDs []string `json:"permission_ids"`
	}
	var req PermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	roleID := c.Params("id")

	tx, err := db.Begin()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update permissions")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update permissions")
	}
	for _, pid := range req.PermissionIDs {
		if _, err := tx.Exec(`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			roleID, pid); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update permissions")
		}
	}

	if err := tx.Commit(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update permissions")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Permissions updated successfully"})
}

func GetPermissionsAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := db.Query(`SELECT id, name, created_at, updated_at FROM permissions WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch permissions")
	}
	defer rows.Close()

	permissions := []*models.Permission{}
	for rows.Next() {
		p := &models.Permission{}
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read permissions")
		}
		permissions = append(permissions, p)
	}

	return c.JSON(fiber.Map{"success": true, "data": permissions})
}
