package services

import (
	"context"
	"time"

	"github.com/greentable/site-backend/repositories"
)

// fakeContentRepo is an in-memory SiteContentRepository for tests.
type fakeContentRepo struct {
	rows   []repositories.ContentRow
	nextID int
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{nextID: 1}
}

func (f *fakeContentRepo) Upsert(_ context.Context, contentType, title string, content *string) (*repositories.ContentRow, error) {
	for i := range f.rows {
		row := &f.rows[i]
		if row.Type == contentType && row.Title != nil && *row.Title == title {
			row.Content = copyPtr(content)
			row.UpdatedAt = time.Now()
			out := *row
			return &out, nil
		}
	}
	row := repositories.ContentRow{
		ID:        f.nextID,
		Type:      contentType,
		Title:     &title,
		Content:   copyPtr(content),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.nextID++
	f.rows = append(f.rows, row)
	return &row, nil
}

func (f *fakeContentRepo) GetByTypeAndTitle(_ context.Context, contentType, title string) (*repositories.ContentRow, error) {
	for i := range f.rows {
		row := f.rows[i]
		if row.Type == contentType && row.Title != nil && *row.Title == title {
			return &row, nil
		}
	}
	return nil, repositories.ErrContentNotFound
}

func (f *fakeContentRepo) ListByType(_ context.Context, contentType string) ([]repositories.ContentRow, error) {
	result := make([]repositories.ContentRow, 0)
	for _, row := range f.rows {
		if row.Type == contentType {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeContentRepo) Insert(_ context.Context, contentType string, title, content *string) (*repositories.ContentRow, error) {
	row := repositories.ContentRow{
		ID:        f.nextID,
		Type:      contentType,
		Title:     copyPtr(title),
		Content:   copyPtr(content),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.nextID++
	f.rows = append(f.rows, row)
	return &row, nil
}

func (f *fakeContentRepo) ClearContentByValue(_ context.Context, contentType, value string) (int64, error) {
	var cleared int64
	for i := range f.rows {
		row := &f.rows[i]
		if row.Type == contentType && row.Content != nil && *row.Content == value {
			row.Content = nil
			cleared++
		}
	}
	return cleared, nil
}

func (f *fakeContentRepo) DeleteByTypeAndContent(_ context.Context, contentType, value string) (int64, error) {
	var deleted int64
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.Type == contentType && row.Content != nil && *row.Content == value {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return deleted, nil
}

func copyPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func strPtr(s string) *string { return &s }

// fakeNotifier records hub broadcasts.
type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) BroadcastToRoom(room string, eventType string, payload interface{}) {
	f.events = append(f.events, room+"/"+eventType)
}
