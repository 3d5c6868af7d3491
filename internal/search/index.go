package search

import (
	"sort"
	"strings"

	"github.com/d4nchik/VH-BookingService/internal/domain"
)

// Index неизменяемый префиксный индекс по названиям и городам площадок
//
// Строится один раз по полному списку площадок и только читается.
// При изменении каталога индекс не модифицируется на месте, а целиком
// заменяется свежепостроенным (Build) - модель construct-once/read-many
type Index struct {
	entries []entry
}

type entry struct {
	key     string
	venueID int64
}

// Build строит индекс по списку площадок
// Каждая площадка индексируется по названию и городу в нижнем регистре
func Build(venues []*domain.Venue) *Index {
	entries := make([]entry, 0, len(venues)*2)

	for _, venue := range venues {
		if venue == nil {
			continue
		}
		if name := normalize(venue.Name); name != "" {
			entries = append(entries, entry{key: name, venueID: venue.ID})
		}
		if city := normalize(venue.City); city != "" {
			entries = append(entries, entry{key: city, venueID: venue.ID})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key != entries[j].key {
			return entries[i].key < entries[j].key
		}
		return entries[i].venueID < entries[j].venueID
	})

	return &Index{entries: entries}
}

// Lookup возвращает ID площадок, у которых название или город начинается с prefix
// Поиск регистронезависимый; результат отсортирован по ID без дубликатов
// Пустой префикс дает пустой результат
func (idx *Index) Lookup(prefix string) []int64 {
	prefix = normalize(prefix)
	if prefix == "" {
		return []int64{}
	}

	// Левая граница диапазона ключей с данным префиксом
	lo := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].key >= prefix
	})

	seen := make(map[int64]bool)
	ids := make([]int64, 0)

	for i := lo; i < len(idx.entries); i++ {
		if !strings.HasPrefix(idx.entries[i].key, prefix) {
			break
		}
		id := idx.entries[i].venueID
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Size возвращает количество записей в индексе
func (idx *Index) Size() int {
	return len(idx.entries)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
