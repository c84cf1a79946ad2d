package messages

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/models"
)

const messageColumns = `m.id, m.sender_id, m.recipient_id, COALESCE(m.subject, ''), m.body, m.read_at, m.created_at,
	s.first_name, s.last_name, r.first_name, r.last_name`

func scanMessage(rows *sql.Rows) (*models.Message, error) {
	m := &models.Message{}
	var sFirst, sLast, rFirst, rLast string
	err := rows.Scan(
		&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Body, &m.ReadAt, &m.CreatedAt,
		&sFirst, &sLast, &rFirst, &rLast,
	)
	if err != nil {
		return nil, err
	}
	m.Sender = &models.User{ID: m.SenderID, FirstName: sFirst, LastName: sLast}
	m.Recipient = &models.User{ID: m.RecipientID, FirstName: rFirst, LastName: rLast}
	return m, nil
}

// GetInboxAPI lists messages addressed to the authenticated user.
func GetInboxAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := c.Locals("user_id").(string)

	rows, err := db.Query(`SELECT `+messageColumns+`
						   FROM messages m
						   JOIN users s ON m.sender_id = s.id
						   JOIN users r ON m.recipient_id = r.id
						   WHERE m.recipient_id = $1 AND m.deleted_at IS NULL
						   ORDER BY m.created_at DESC`, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch messages")
	}
	defer rows.Close()

	list := []*models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read messages")
		}
		list = append(list, m)
	}

	return c.JSON(fiber.Map{"success": true, "data": list})
}

func GetSentAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := c.Locals("user_id").(string)

	rows, err := db.Query(`SELECT `+messageColumns+`
						   FROM messages m
						   JOIN users s ON m.sender_id = s.id
						   JOIN users r ON m.recipient_id = r.id
						   WHERE m.sender_id = $1 AND m.deleted_at IS NULL
						   ORDER BY m.created_at DESC`, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch messages")
	}
	defer rows.Close()

	list := []*models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read messages")
		}
		list = append(list, m)
	}

	return c.JSON(fiber.Map{"success": true, "data": list})
}

func SendMessageAPI(c *fiber.Ctx, db *sql.DB) error {
	var m models.Message
	if err := c.BodyParser(&m); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	m.SenderID = c.Locals("user_id").(string)
	m.Body = strings.TrimSpace(m.Body)

	if m.RecipientID == "" || m.Body == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "recipient_id and body are required")
	}

	var recipientExists bool
	if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND deleted_at IS NULL)`, m.RecipientID).Scan(&recipientExists); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check recipient")
	}
	if !recipientExists {
		return fiber.NewError(fiber.StatusNotFound, "Recipient not found")
	}

	err := db.QueryRow(`INSERT INTO messages (sender_id, recipient_id, subject, body)
						VALUES ($1, $2, NULLIF($3, ''), $4)
						RETURNING id, created_at`,
		m.SenderID, m.RecipientID, m.Subject, m.Body).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to send message")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": m})
}

// MarkReadAPI stamps read_at once; re-reading does not move the timestamp.
func MarkReadAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := c.Locals("user_id").(string)

	result, err := db.Exec(`UPDATE messages SET read_at = $1
							WHERE id = $2 AND recipient_id = $3 AND read_at IS NULL AND deleted_at IS NULL`,
		time.Now(), c.Params("id"), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark message as read")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		// already read or not the recipient's message; treat as no-op success
		return c.JSON(fiber.Map{"success": true})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Message marked as read"})
}

// UnreadCountAPI feeds the notification badge.
func UnreadCountAPI(c *fiber.Ctx, db *sql.DB) error {
	userID := c.Locals("user_id").(string)

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM messages
						WHERE recipient_id = $1 AND read_at IS NULL AND deleted_at IS NULL`, userID).Scan(&count)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count unread messages")
	}

	return c.JSON(fiber.Map{"success": true, "count": count})
}

func GetAnnouncementsAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := db.Query(`SELECT id, title, body, starts_at, author_id, created_at, updated_at
						   FROM announcements WHERE deleted_at IS NULL
						   ORDER BY starts_at DESC`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch announcements")
	}
	defer rows.Close()

	list := []*models.Announcement{}
	for rows.Next() {
		a := &models.Announcement{}
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.StartsAt, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read announcements")
		}
		list = append(list, a)
	}

	return c.JSON(fiber.Map{"success": true, "data": list})
}

func CreateAnnouncementAPI(c *fiber.Ctx, db *sql.DB) error {
	var a models.Announcement
	if err := c.BodyParser(&a); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	a.AuthorID = c.Locals("user_id").(string)
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Body) == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "title and body are required")
	}
	if a.StartsAt.IsZero() {
		a.StartsAt = time.Now()
	}

	err := db.QueryRow(`INSERT INTO announcements (title, body, starts_at, author_id)
						VALUES ($1, $2, $3, $4)
						RETURNING id, created_at, updated_at`,
		a.Title, a.Body, a.StartsAt, a.AuthorID).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create announcement")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": a})
}

func DeleteAnnouncementAPI(c *fiber.Ctx, db *sql.DB) error {
	result, err := db.Exec(`UPDATE announcements SET deleted_at = NOW(), updated_at = NOW()
							WHERE id = $1 AND deleted_at IS NULL`, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete announcement")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Announcement not found")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Announcement deleted successfully"})
}
