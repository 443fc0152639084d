package postgres

import (
	"strconv"
	"strings"
)

// ownerWhere composes the WHERE clause for owner/status scoped listings.
// Empty values add no condition.
func ownerWhere(ownerCol, owner, statusCol, status string) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if o := strings.TrimSpace(owner); o != "" {
		args = append(args, o)
		clauses = append(clauses, ownerCol+" = $"+itoa(len(args))+"::uuid")
	}
	if s := strings.TrimSpace(status); s != "" && statusCol != "" {
		args = append(args, s)
		clauses = append(clauses, statusCol+" = $"+itoa(len(args)))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func itoa(i int) string { return strconv.Itoa(i) }
