package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// attemptRepo implements AttemptRepo on the quiz_attempts table.
type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, data AttemptData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO quiz_attempts
		(sequence, timestamp, session_id, title, topic, question_type, correct, total, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.SessionID, data.Title, data.Topic,
		data.QuestionType, data.Correct, data.Total, data.Score,
	)
	if err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error) {
	where, args := buildWhere(opts, nil, nil)
	query := `SELECT id, sequence, timestamp, session_id, title, topic, question_type,
		correct, total, score FROM quiz_attempts` + where + " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.Sequence, &a.Timestamp, &a.SessionID, &a.Title, &a.Topic,
			&a.QuestionType, &a.Correct, &a.Total, &a.Score); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *attemptRepo) StatsByQuestionType(ctx context.Context) ([]TypeStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT question_type, COUNT(*), AVG(score), MAX(score)
		FROM quiz_attempts GROUP BY question_type ORDER BY question_type`)
	if err != nil {
		return nil, fmt.Errorf("query attempt stats: %w", err)
	}
	defer rows.Close()

	var out []TypeStats
	for rows.Next() {
		var s TypeStats
		if err := rows.Scan(&s.QuestionType, &s.Attempts, &s.AvgScore, &s.BestScore); err != nil {
			return nil, fmt.Errorf("scan attempt stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
