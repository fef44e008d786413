package data

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/veritasproject/veritas/pkg/audit"
)

const (
	insertAuditSQL = `INSERT INTO audit
		(project, address, overall_score, on_chain_score, off_chain_score,
		 confidence, recommendation, report, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectAuditsSQL = `SELECT project, address, overall_score, confidence,
			recommendation, report, created_at
		FROM audit
		WHERE project LIKE COALESCE(?, project)
		ORDER BY created_at DESC
		LIMIT ?
	`
)

// HistoryItem is one persisted audit, with the full report attached.
type HistoryItem struct {
	Project        string            `json:"project" yaml:"project"`
	Address        string            `json:"address,omitempty" yaml:"address,omitempty"`
	OverallScore   int               `json:"overall_score" yaml:"overall_score"`
	Confidence     float64           `json:"confidence" yaml:"confidence"`
	Recommendation string            `json:"recommendation" yaml:"recommendation"`
	CreatedAt      string            `json:"created_at" yaml:"created_at"`
	Report         *audit.TrustScore `json:"report,omitempty" yaml:"report,omitempty"`
}

// SaveAudit appends a completed trust score to the history.
func SaveAudit(db *sql.DB, score *audit.TrustScore) error {
	if db == nil {
		return errDBNotInitialized
	}
	if score == nil {
		return errors.New("score is required")
	}

	report, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}

	_, err = db.Exec(insertAuditSQL,
		score.Project,
		score.Address,
		score.OverallScore,
		score.OnChainScore,
		score.OffChainScore,
		score.ConfidenceLevel,
		string(score.Recommendation),
		string(report),
		score.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("error saving audit for %s: %w", score.Project, err)
	}

	return nil
}

// QueryAudits returns the most recent audits, optionally filtered by a
// fuzzy project match, newest first.
func QueryAudits(db *sql.DB, projectLike *string, limit int) ([]*HistoryItem, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	var like *string
	if projectLike != nil && *projectLike != "" {
		v := "%" + *projectLike + "%"
		like = &v
	}

	rows, err := db.Query(selectAuditsSQL, like, limit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query audits: %w", err)
	}
	defer rows.Close()

	list := make([]*HistoryItem, 0)
	for rows.Next() {
		item := &HistoryItem{}
		var report string
		if err := rows.Scan(&item.Project, &item.Address, &item.OverallScore,
			&item.Confidence, &item.Recommendation, &report, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}

		var ts audit.TrustScore
		if jsonErr := json.Unmarshal([]byte(report), &ts); jsonErr == nil {
			item.Report = &ts
		}

		list = append(list, item)
	}

	return list, rows.Err()
}
