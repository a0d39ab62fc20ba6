package service

import "context"

// Store: долговременное множество строк по ключу. Только добавление, без удаления.
type Store interface {
	Members(ctx context.Context, key string) (map[string]struct{}, error)
	AddMembers(ctx context.Context, key string, ids ...string) error
}
