// Package dashboard composes the read-only landing views. Every call fans
// its queries out concurrently and re-queries the store; a failed metric
// degrades to its zero value instead of aborting the whole view.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/class"
	"github.com/trezcool/walimu/core/document"
	"github.com/trezcool/walimu/core/record"
	"github.com/trezcool/walimu/core/syllabus"
	"github.com/trezcool/walimu/core/teacher"
)

// ActivitiesCollection holds the recent-activity feed entries, scoped by
// teacherId like the owned collections (read-only here).
const ActivitiesCollection = "activities"

type (
	// AdminStats are whole-collection counts for the admin landing view.
	AdminStats struct {
		Teachers    int `json:"teachersCount"`
		Courses     int `json:"coursesCount"`
		Submissions int `json:"submissionsCount"`
	}

	// Activity is one recent-activity feed item.
	Activity struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		Description string `json:"description"`
		Timestamp   string `json:"timestamp"`
	}

	// TeacherStats summarize one teacher's records for their landing view.
	TeacherStats struct {
		CompletionStatuses []int      `json:"completionStatuses"`
		AverageProgress    float64    `json:"averageProgress"`
		Classes            int        `json:"classesCount"`
		Documents          int        `json:"documentsCount"`
		RecentActivities   []Activity `json:"recentActivities"`
	}
)

type Service struct {
	store core.RecordStore
	log   core.Logger
}

func NewService(store core.RecordStore, log core.Logger) *Service {
	return &Service{store: store, log: log}
}

// AdminStats counts the roster, syllabus and document collections.
func (svc *Service) AdminStats(ctx context.Context) AdminStats {
	var stats AdminStats
	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); stats.Teachers = svc.count(ctx, teacher.Collection) }()
	go func() { defer wg.Done(); stats.Courses = svc.count(ctx, syllabus.Collection) }()
	go func() { defer wg.Done(); stats.Submissions = svc.count(ctx, document.Collection) }()
	wg.Wait()
	return stats
}

// TeacherStats summarizes the records owned by scopeKey. An empty scope key
// yields empty stats.
func (svc *Service) TeacherStats(ctx context.Context, scopeKey string) TeacherStats {
	stats := TeacherStats{CompletionStatuses: []int{}, RecentActivities: []Activity{}}
	if scopeKey == "" {
		return stats
	}
	owned := core.Eq{Field: record.KeyField, Value: scopeKey}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		docs, err := svc.store.Query(ctx, syllabus.Collection, owned)
		if err != nil {
			svc.log.Error("dashboard: querying syllabus progress", err)
			return
		}
		var total int
		for _, doc := range docs {
			status := intField(doc.Fields, "completionStatus")
			stats.CompletionStatuses = append(stats.CompletionStatuses, status)
			total += status
		}
		if len(docs) > 0 {
			stats.AverageProgress = float64(total) / float64(len(docs))
		}
	}()
	go func() { defer wg.Done(); stats.Classes = svc.count(ctx, class.Collection, owned) }()
	go func() { defer wg.Done(); stats.Documents = svc.count(ctx, document.Collection, owned) }()
	go func() {
		defer wg.Done()
		docs, err := svc.store.Query(ctx, ActivitiesCollection, owned)
		if err != nil {
			svc.log.Error("dashboard: querying activities", err)
			return
		}
		for _, doc := range docs {
			stats.RecentActivities = append(stats.RecentActivities, Activity{
				ID:          doc.ID,
				Type:        strField(doc.Fields, "type"),
				Description: strField(doc.Fields, "description"),
				Timestamp:   strField(doc.Fields, "timestamp"),
			})
		}
	}()
	wg.Wait()
	return stats
}

// count degrades to zero on store failure.
func (svc *Service) count(ctx context.Context, collection string, terms ...core.Eq) int {
	docs, err := svc.store.Query(ctx, collection, terms...)
	if err != nil {
		svc.log.Error(fmt.Sprintf("dashboard: counting %s", collection), err)
		return 0
	}
	return len(docs)
}

func strField(fields core.Fields, name string) string {
	s, _ := fields[name].(string)
	return s
}

func intField(fields core.Fields, name string) int {
	switch v := fields[name].(type) {
	case float64: // JSON numbers decode as float64
		return int(v)
	case int:
		return v
	}
	return 0
}
