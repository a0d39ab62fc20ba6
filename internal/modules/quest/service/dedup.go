package service

import (
	"context"
	"fmt"

	"signal_bot/internal/models"
	storage "signal_bot/internal/modules/storage/service"
)

// Key возвращает ключ множества просмотренных ID ленты.
func Key(feed string) string { return "quests:" + feed }

// Deduplicator сравнивает свежую выборку с сохранённым множеством.
type Deduplicator struct {
	store      storage.Store
	silentSeed bool
}

func NewDeduplicator(store storage.Store, silentSeed bool) *Deduplicator {
	return &Deduplicator{store: store, silentSeed: silentSeed}
}

// Process возвращает новые ID в порядке выборки и дописывает их в множество.
// notify вызывается на каждый новый ID до записи. При silentSeed и пустом
// множестве всё записывается без уведомлений.
func (d *Deduplicator) Process(ctx context.Context, feed string, quests []models.Quest, notify func(models.NewQuest)) (fresh []models.NewQuest, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Deduplicator.Process(%s): %w", feed, err)
		}
	}()

	ids := models.FlattenIDs(quests)
	if len(ids) == 0 {
		return nil, nil
	}

	key := Key(feed)
	seen, err := d.store.Members(ctx, key)
	if err != nil {
		return nil, err
	}

	titles := models.Titles(quests)
	newIDs := make([]string, 0)
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		newIDs = append(newIDs, id)
		fresh = append(fresh, models.NewQuest{Feed: feed, ID: id, Title: titles[id]})
	}
	if len(newIDs) == 0 {
		return nil, nil
	}

	seeding := d.silentSeed && len(seen) == 0
	if !seeding && notify != nil {
		for _, q := range fresh {
			notify(q)
		}
	}

	if err = d.store.AddMembers(ctx, key, newIDs...); err != nil {
		return nil, err
	}
	if seeding {
		return nil, nil
	}
	return fresh, nil
}
