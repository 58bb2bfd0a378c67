package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

func TestBookmarkIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	first := time.Unix(1700000000, 0)

	if err := s.Set(ctx, 1, true, first); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, 1, true, first.Add(time.Hour)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	a, err := s.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !a.Bookmarked || !a.BookmarkedAt.Equal(first) {
		t.Errorf("Get() = %+v, want bookmarked at first time", a)
	}

	annotations, _ := s.Annotations(ctx)
	if len(annotations) != 1 {
		t.Errorf("Annotations() len = %d, want 1", len(annotations))
	}
}

func TestUnbookmark(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	// unbookmarking an unknown id is a no-op
	if err := s.Set(ctx, 42, false, time.Now()); err != nil {
		t.Fatalf("Set(false) on unknown id error = %v", err)
	}

	_ = s.Set(ctx, 42, true, time.Now())
	_ = s.Set(ctx, 42, false, time.Now())

	a, _ := s.Get(ctx, 42)
	if a.Bookmarked {
		t.Error("Get() should report not bookmarked after unbookmark")
	}
	if a.PromptID != 42 {
		t.Errorf("Get() PromptID = %d, want 42", a.PromptID)
	}
}

func TestAnnotationsMostRecentFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Unix(1700000000, 0)

	_ = s.Set(ctx, 1, true, base)
	_ = s.Set(ctx, 2, true, base.Add(2*time.Minute))
	_ = s.Set(ctx, 3, true, base.Add(time.Minute))

	annotations, err := s.Annotations(ctx)
	if err != nil {
		t.Fatalf("Annotations() error = %v", err)
	}
	want := []int{2, 3, 1}
	for i, a := range annotations {
		if a.PromptID != want[i] {
			t.Errorf("Annotations()[%d] = %d, want %d", i, a.PromptID, want[i])
		}
	}
}

func TestCustomLifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Unix(1700000000, 0)

	id1, _ := s.NextCustomID(ctx)
	id2, _ := s.NextCustomID(ctx)
	if id1 != domain.CustomIDBase+1 || id2 != domain.CustomIDBase+2 {
		t.Fatalf("NextCustomID() = %d, %d", id1, id2)
	}

	_ = s.SaveCustom(ctx, &domain.Prompt{ID: id2, Title: "newer", Prompt: "b", Custom: true, CreatedAt: base.Add(time.Second)})
	_ = s.SaveCustom(ctx, &domain.Prompt{ID: id1, Title: "older", Prompt: "a", Custom: true, CreatedAt: base})

	list, err := s.ListCustom(ctx)
	if err != nil {
		t.Fatalf("ListCustom() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != id1 || list[1].ID != id2 {
		t.Errorf("ListCustom() should be oldest first, got %v", list)
	}

	if err := s.DeleteCustom(ctx, id1); err != nil {
		t.Fatalf("DeleteCustom() error = %v", err)
	}
	if _, err := s.GetCustom(ctx, id1); !errors.Is(err, domain.ErrPromptNotFound) {
		t.Errorf("GetCustom() after delete error = %v, want ErrPromptNotFound", err)
	}
	if err := s.DeleteCustom(ctx, id1); !errors.Is(err, domain.ErrPromptNotFound) {
		t.Errorf("DeleteCustom() twice error = %v, want ErrPromptNotFound", err)
	}
}

func TestCustomPromptsAreCopied(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	remark := "original"
	in := &domain.Prompt{ID: domain.CustomIDBase + 1, Title: "t", Prompt: "p", Remark: &remark, Tags: []string{"write"}, Custom: true}

	if err := s.SaveCustom(ctx, in); err != nil {
		t.Fatalf("SaveCustom() error = %v", err)
	}
	*in.Remark = "changed after save"
	in.Tags[0] = "changed"

	got, err := s.GetCustom(ctx, in.ID)
	if err != nil {
		t.Fatalf("GetCustom() error = %v", err)
	}
	if *got.Remark != "original" || got.Tags[0] != "write" {
		t.Fatalf("GetCustom() = %+v, saved prompt shares memory with the caller", got)
	}

	got.Prompt = "mutated"
	*got.Remark = "mutated"
	list, err := s.ListCustom(ctx)
	if err != nil {
		t.Fatalf("ListCustom() error = %v", err)
	}
	list[0].Title = "mutated"

	again, _ := s.GetCustom(ctx, in.ID)
	if again.Prompt != "p" || *again.Remark != "original" || again.Title != "t" {
		t.Errorf("GetCustom() = %+v, stored prompt was mutated through a returned copy", again)
	}
}
