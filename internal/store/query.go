package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/vullk4n/gestao-de-emails/internal/db"
	"github.com/vullk4n/gestao-de-emails/internal/model"
)

// sortColumns maps the accepted orderings to SQL columns.
var sortColumns = map[EmailOrder]string{
	OrderBySentAt:     "e.sent_at",
	OrderByReceivedAt: "e.received_at",
	OrderBySubject:    "e.subject",
}

// SearchEmails returns the emails matching every predicate set on filter,
// with their categories resolved. Nothing matching yields an empty slice.
func (s *SQLiteStore) SearchEmails(ctx context.Context, filter EmailFilter) ([]model.Email, error) {
	query, args, err := buildEmailQuery(emailSelect, filter, true)
	if err != nil {
		return nil, fmt.Errorf("searching emails: %w", err)
	}

	var rows []emailRow
	if err := s.handler(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("searching emails: %w", db.WrapError(err))
	}

	emails := make([]model.Email, 0, len(rows))
	for _, r := range rows {
		emails = append(emails, r.toModel())
	}
	return emails, nil
}

// CountEmails returns how many emails match filter. Paging is ignored.
func (s *SQLiteStore) CountEmails(ctx context.Context, filter EmailFilter) (int, error) {
	query, args, err := buildEmailQuery("SELECT COUNT(1) FROM emails e", filter, false)
	if err != nil {
		return 0, fmt.Errorf("counting emails: %w", err)
	}

	var n int
	if err := s.handler(ctx).GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("counting emails: %w", db.WrapError(err))
	}
	return n, nil
}

// buildEmailQuery appends the filter's predicates to selectClause, which
// must alias the emails table as e. When paged is false ordering and
// pagination are left off.
func buildEmailQuery(selectClause string, filter EmailFilter, paged bool) (string, []interface{}, error) {
	var conditions []string
	var args []interface{}

	if filter.Text != nil && *filter.Text != "" {
		conditions = append(conditions,
			"(instr(fold(e.subject), ?) > 0 OR instr(fold(e.body), ?) > 0)")
		q := db.Fold(*filter.Text)
		args = append(args, q, q)
	}
	if filter.CategoryID != nil && filter.Uncategorized {
		return "", nil, fmt.Errorf("%w: category and uncategorized are exclusive", ErrInvalidInput)
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "e.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.Uncategorized {
		conditions = append(conditions, "e.category_id IS NULL")
	}
	if filter.Read != nil {
		conditions = append(conditions, "e.read = ?")
		args = append(args, boolToInt(*filter.Read))
	}
	if filter.Important != nil {
		conditions = append(conditions, "e.important = ?")
		args = append(args, boolToInt(*filter.Important))
	}
	if filter.Archived != nil {
		conditions = append(conditions, "e.archived = ?")
		args = append(args, boolToInt(*filter.Archived))
	}
	if filter.Sender != nil {
		conditions = append(conditions, "e.sender = ?")
		args = append(args, *filter.Sender)
	}
	if filter.Recipient != nil {
		conditions = append(conditions, "e.recipient = ?")
		args = append(args, *filter.Recipient)
	}
	if filter.SentAfter != nil {
		conditions = append(conditions, "e.sent_at >= ?")
		args = append(args, filter.SentAfter.UTC())
	}
	if filter.SentBefore != nil {
		conditions = append(conditions, "e.sent_at <= ?")
		args = append(args, filter.SentBefore.UTC())
	}

	query := selectClause
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if !paged {
		return query, args, nil
	}

	sortBy := sortColumns[OrderBySentAt]
	if filter.OrderBy != "" {
		col, ok := sortColumns[filter.OrderBy]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown order %q", ErrInvalidInput, filter.OrderBy)
		}
		sortBy = col
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, e.id ASC", sortBy, direction)

	if filter.Limit < 0 || filter.Offset < 0 {
		return "", nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return query, args, nil
}
