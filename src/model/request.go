package model

import (
	"database/sql"
	"fmt"

	"github.com/username/fundfolio/backend/src/models"
)

// CreateInvestorRequest records a submitted deposit/withdrawal request and
// sets its ID.
func CreateInvestorRequest(db *sql.DB, req *models.InvestorRequest) error {
	res, err := db.Exec(`
	INSERT INTO investor_requests (user_id, kind, amount, method, address, notes, reference, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.UserID, string(req.Kind), req.Amount, req.Method, req.Address, req.Notes, req.Reference, req.Status)
	if err != nil {
		return fmt.Errorf("failed to insert investor request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = id
	return nil
}

// ListInvestorRequestsByUser returns a user's submitted requests, most
// recent first.
func ListInvestorRequestsByUser(db *sql.DB, userID int64) ([]models.InvestorRequest, error) {
	rows, err := db.Query(`
	SELECT id, user_id, kind, amount, method, address, notes, reference, status, created_at
	FROM investor_requests
	WHERE user_id = ?
	ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investor requests: %w", err)
	}
	defer rows.Close()

	requests := []models.InvestorRequest{}
	for rows.Next() {
		var req models.InvestorRequest
		var kind string
		var address, notes sql.NullString
		if err := rows.Scan(&req.ID, &req.UserID, &kind, &req.Amount, &req.Method,
			&address, &notes, &req.Reference, &req.Status, &req.CreatedAt); err != nil {
			return nil, err
		}
		req.Kind = models.RequestKind(kind)
		req.Address = address.String
		req.Notes = notes.String
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
