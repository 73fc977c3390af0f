// Package timetable serves the whole-school period table. Unlike the owned
// collections, timetable entries are not teacher-scoped; the view itself is
// teacher-only.
package timetable

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core"
)

// Collection is the record store collection holding timetable entries.
const Collection = "timetable"

var dayOrder = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
}

// Entry is one slot of the school timetable.
type Entry struct {
	ID      string `json:"id"`
	Day     string `json:"day"`
	Period  int    `json:"period"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
}

type Service struct {
	store core.RecordStore
}

func NewService(store core.RecordStore) *Service {
	return &Service{store: store}
}

// List returns all entries sorted by weekday then period.
func (svc *Service) List(ctx context.Context) ([]Entry, error) {
	docs, err := svc.store.Query(ctx, Collection)
	if err != nil {
		return nil, errors.Wrap(err, "querying timetable")
	}

	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, fromDocument(doc))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := dayOrder[entries[i].Day], dayOrder[entries[j].Day]
		if di == dj {
			return entries[i].Period < entries[j].Period
		}
		return di < dj
	})
	return entries, nil
}

func fromDocument(doc core.Document) Entry {
	day, _ := doc.Fields["day"].(string)
	subject, _ := doc.Fields["subject"].(string)
	teacher, _ := doc.Fields["teacher"].(string)
	period, _ := doc.Fields["period"].(float64) // JSON numbers decode as float64
	if p, ok := doc.Fields["period"].(int); ok {
		period = float64(p)
	}
	return Entry{ID: doc.ID, Day: day, Period: int(period), Subject: subject, Teacher: teacher}
}
