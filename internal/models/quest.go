package models

// Quest: элемент ленты квестов, вложенные quests дают дочерние ID.
type Quest struct {
	ID     string
	Title  string
	Quests []Quest
}

// NewQuest: то, что ушло в уведомление.
type NewQuest struct {
	Feed  string
	ID    string
	Title string
}

// FlattenIDs собирает ID родителей и детей без повторов, порядок сохраняется.
func FlattenIDs(quests []Quest) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(quests))

	var walk func(qs []Quest)
	walk = func(qs []Quest) {
		for _, q := range qs {
			if q.ID != "" {
				if _, ok := seen[q.ID]; !ok {
					seen[q.ID] = struct{}{}
					out = append(out, q.ID)
				}
			}
			walk(q.Quests)
		}
	}
	walk(quests)
	return out
}

// Titles: ID -> заголовок, первый встреченный выигрывает.
func Titles(quests []Quest) map[string]string {
	out := make(map[string]string)
	var walk func(qs []Quest)
	walk = func(qs []Quest) {
		for _, q := range qs {
			if _, ok := out[q.ID]; !ok && q.ID != "" {
				out[q.ID] = q.Title
			}
			walk(q.Quests)
		}
	}
	walk(quests)
	return out
}
