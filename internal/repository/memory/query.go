package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ai-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

// row is the projection the specifications are evaluated against.
type row struct {
	id        uuid.UUID
	userID    uuid.UUID
	chatID    uuid.UUID
	email     string
	createdAt time.Time
	updatedAt time.Time
	seq       uint64
}

type lessFunc func(a, b row) int

// selectRows filters, orders and paginates items the way the SQL store would
// for the same specifications. Without an ordering spec rows come back in
// insertion order.
func selectRows[T any](items []T, project func(T) row, specs []specification.Specification) ([]T, error) {
	var (
		filters []func(row) bool
		orders  []lessFunc
		page    *specification.Pagination
	)

	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			filters = append(filters, func(r row) bool { return r.id == s.ID })
		case specification.ByEmail:
			email := strings.ToLower(strings.TrimSpace(s.Email))
			filters = append(filters, func(r row) bool { return r.email == email })
		case specification.UserOwnedBy:
			filters = append(filters, func(r row) bool { return r.userID == s.UserID })
		case specification.ByChatID:
			filters = append(filters, func(r row) bool { return r.chatID == s.ChatID })
		case specification.CreatedSince:
			filters = append(filters, func(r row) bool { return !r.createdAt.Before(s.Since) })
		case specification.Chronological:
			orders = append(orders, byCreated(false), bySeq(false))
		case specification.RecentlyUpdated:
			orders = append(orders, byUpdated(true), bySeq(true))
		case specification.Pagination:
			p := s
			page = &p
		case specification.ForUpdate:
			// the unit of work already holds the store lock
		default:
			return nil, fmt.Errorf("memory store: unsupported specification %T", spec)
		}
	}

	type entry struct {
		item T
		row  row
	}
	var selected []entry
	for _, item := range items {
		r := project(item)
		if matches(r, filters) {
			selected = append(selected, entry{item: item, row: r})
		}
	}

	orders = append(orders, bySeq(false))
	sort.SliceStable(selected, func(i, j int) bool {
		for _, less := range orders {
			if c := less(selected[i].row, selected[j].row); c != 0 {
				return c < 0
			}
		}
		return false
	})

	if page != nil {
		start := min(max(page.Offset, 0), len(selected))
		end := len(selected)
		if page.Limit > 0 {
			end = min(start+page.Limit, len(selected))
		}
		selected = selected[start:end]
	}

	out := make([]T, len(selected))
	for i, e := range selected {
		out[i] = e.item
	}
	return out, nil
}

func matches(r row, filters []func(row) bool) bool {
	for _, f := range filters {
		if !f(r) {
			return false
		}
	}
	return true
}

func byCreated(desc bool) lessFunc {
	return direction(desc, func(a, b row) int { return a.createdAt.Compare(b.createdAt) })
}

func byUpdated(desc bool) lessFunc {
	return direction(desc, func(a, b row) int { return a.updatedAt.Compare(b.updatedAt) })
}

func bySeq(desc bool) lessFunc {
	return direction(desc, func(a, b row) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
}

func direction(desc bool, cmp lessFunc) lessFunc {
	if !desc {
		return cmp
	}
	return func(a, b row) int { return -cmp(a, b) }
}
