package properties

import (
	"database/sql"

	"github.com/Mendozape/crud-sub000/app/models"
)

func getAllProperties(db *sql.DB) ([]*models.Property, error) {
	query := `SELECT p.id, p.community, p.street_id, p.street_number, p.type, p.resident_id,
			  COALESCE(p.comments, ''), p.overdue_months, p.created_at, p.updated_at,
			  s.id, s.name,
			  r.id, r.first_name, r.last_name
			  FROM properties p
			  JOIN streets s ON p.street_id = s.id
			  LEFT JOIN residents r ON p.resident_id = r.id AND r.deleted_at IS NULL
			  WHERE p.deleted_at IS NULL
			  ORDER BY s.name, p.street_number`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []*models.Property{}
	for rows.Next() {
		p := &models.Property{}
		var streetID, streetName string
		var resID, resFirst, resLast sql.NullString
		err := rows.Scan(
			&p.ID, &p.Community, &p.StreetID, &p.StreetNumber, &p.Type, &p.ResidentID,
			&p.Comments, &p.OverdueMonths, &p.CreatedAt, &p.UpdatedAt,
			&streetID, &streetName,
			&resID, &resFirst, &resLast,
		)
		if err != nil {
			return nil, err
		}
		p.Street = &models.Street{ID: streetID, Name: streetName}
		if resID.Valid {
			p.Resident = &models.Resident{ID: resID.String, FirstName: resFirst.String, LastName: resLast.String}
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func getPropertyByID(db *sql.DB, id string) (*models.Property, error) {
	query := `SELECT p.id, p.community, p.street_id, p.street_number, p.type, p.resident_id,
			  COALESCE(p.comments, ''), p.overdue_months, p.created_at, p.updated_at,
			  s.id, s.name
			  FROM properties p
			  JOIN streets s ON p.street_id = s.id
			  WHERE p.id = $1 AND p.deleted_at IS NULL`

	p := &models.Property{}
	var streetID, streetName string
	err := db.QueryRow(query, id).Scan(
		&p.ID, &p.Community, &p.StreetID, &p.StreetNumber, &p.Type, &p.ResidentID,
		&p.Comments, &p.OverdueMonths, &p.CreatedAt, &p.UpdatedAt,
		&streetID, &streetName,
	)
	if err != nil {
		return nil, err
	}
	p.Street = &models.Street{ID: streetID, Name: streetName}
	return p, nil
}

// addressTaken reports whether another live property already occupies the
// (community, street, number) tuple. excludeID may be empty on create.
func addressTaken(db *sql.DB, community, streetID, streetNumber, excludeID string) (bool, error) {
	query := `SELECT EXISTS (
				SELECT 1 FROM properties
				WHERE community = $1 AND street_id = $2 AND street_number = $3
				  AND deleted_at IS NULL AND ($4 = '' OR id <> $4::uuid)
			  )`
	var taken bool
	err := db.QueryRow(query, community, streetID, streetNumber, excludeID).Scan(&taken)
	return taken, err
}

func createProperty(db *sql.DB, p *models.Property) error {
	query := `INSERT INTO properties (community, street_id, street_number, type, resident_id, comments)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
			  RETURNING id, overdue_months, created_at, updated_at`
	return db.QueryRow(query, p.Community, p.StreetID, p.StreetNumber, p.Type, p.ResidentID, p.Comments).
		Scan(&p.ID, &p.OverdueMonths, &p.CreatedAt, &p.UpdatedAt)
}

func updateProperty(db *sql.DB, p *models.Property) (int64, error) {
	query := `UPDATE properties
			  SET community = $1, street_id = $2, street_number = $3, type = $4,
			      resident_id = $5, comments = NULLIF($6, ''), updated_at = NOW()
			  WHERE id = $7 AND deleted_at IS NULL`
	result, err := db.Exec(query, p.Community, p.StreetID, p.StreetNumber, p.Type, p.ResidentID, p.Comments, p.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func softDeleteProperty(db *sql.DB, id, reason, actorID string) (int64, error) {
	query := `UPDATE properties
			  SET deleted_at = NOW(), deletion_reason = $1, deleted_by = $2, updated_at = NOW()
			  WHERE id = $3 AND deleted_at IS NULL`
	result, err := db.Exec(query, reason, actorID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func setOverdueMonths(db *sql.DB, id string, months int) (int64, error) {
	result, err := db.Exec(
		`UPDATE properties SET overdue_months = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		months, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
