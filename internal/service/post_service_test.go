package service

import (
	"errors"
	"testing"
)

func TestCreatePostWithTags(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)

	post, err := svc.Create(PostInput{
		Title:    "Hello World",
		Summary:  " 摘要 ",
		Content:  "first post content",
		TagNames: []string{"Go", "Web", "Go", " "},
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	if post.Slug != "hello-world" {
		t.Fatalf("expected slug hello-world, got %q", post.Slug)
	}
	if post.Status != "draft" {
		t.Fatalf("expected new post to be draft, got %q", post.Status)
	}
	if post.Summary != "摘要" {
		t.Fatalf("expected trimmed summary, got %q", post.Summary)
	}
	if len(post.Tags) != 2 {
		t.Fatalf("expected 2 deduplicated tags, got %d", len(post.Tags))
	}
	if post.ReadingTime < 1 {
		t.Fatalf("expected reading time >= 1, got %d", post.ReadingTime)
	}
}

func TestCreatePostRequiresTitle(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	if _, err := svc.Create(PostInput{Title: "   "}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	if _, err := svc.Create(PostInput{Title: "Same Slug", Slug: "same"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(PostInput{Title: "Other Title", Slug: "same"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestPublishAndGetBySlug(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	created, err := svc.Create(PostInput{Title: "Publish Me", Content: "content"})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	published, err := svc.Publish(created.ID)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.Status != "published" || published.PublishedAt == nil {
		t.Fatalf("expected published post with timestamp, got status=%q publishedAt=%v", published.Status, published.PublishedAt)
	}

	loaded, err := svc.GetBySlug("publish-me")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if loaded.ID != created.ID {
		t.Fatalf("expected post %d, got %d", created.ID, loaded.ID)
	}

	if _, err := svc.GetBySlug("missing"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}

	draft, err := svc.Unpublish(created.ID)
	if err != nil {
		t.Fatalf("unpublish failed: %v", err)
	}
	if draft.Status != "draft" {
		t.Fatalf("expected draft after unpublish, got %q", draft.Status)
	}
}

func TestListPostsFilters(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)

	for _, input := range []PostInput{
		{Title: "Go Concurrency", Content: "goroutines", TagNames: []string{"Go"}},
		{Title: "Gin Tips", Content: "handlers", TagNames: []string{"Go", "Web"}},
		{Title: "Travel Notes", Content: "mountains", TagNames: []string{"Life"}},
	} {
		post, err := svc.Create(input)
		if err != nil {
			t.Fatalf("create %q failed: %v", input.Title, err)
		}
		if input.Title != "Travel Notes" {
			if _, err := svc.Publish(post.ID); err != nil {
				t.Fatalf("publish %q failed: %v", input.Title, err)
			}
		}
	}

	published, err := svc.List(PostFilter{Status: "published"})
	if err != nil {
		t.Fatalf("list published failed: %v", err)
	}
	if published.Total != 2 || published.PublishedCount != 2 || published.DraftCount != 1 {
		t.Fatalf("unexpected counters: total=%d published=%d draft=%d", published.Total, published.PublishedCount, published.DraftCount)
	}

	tagged, err := svc.List(PostFilter{TagNames: []string{"Web"}})
	if err != nil {
		t.Fatalf("list by tag failed: %v", err)
	}
	if tagged.Total != 1 || tagged.Posts[0].Title != "Gin Tips" {
		t.Fatalf("unexpected tag filter result: %+v", tagged.Posts)
	}

	searched, err := svc.List(PostFilter{Search: "Concurrency"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if searched.Total != 1 || searched.Posts[0].Title != "Go Concurrency" {
		t.Fatalf("unexpected search result: %+v", searched.Posts)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":        "hello-world",
		"  Go & Gin Tips!  ": "go-gin-tips",
		"already-slugged":    "already-slugged",
	}
	for input, expected := range cases {
		if got := Slugify(input); got != expected {
			t.Fatalf("Slugify(%q) = %q, expected %q", input, got, expected)
		}
	}

	// 纯中文标题无法得到 ASCII slug，回退为时间戳形式
	if got := Slugify("第一篇文章"); len(got) == 0 {
		t.Fatal("expected non-empty fallback slug")
	}
}

func TestCalculateReadingTime(t *testing.T) {
	if got := calculateReadingTime(""); got != 1 {
		t.Fatalf("expected 1 minute for empty content, got %d", got)
	}

	long := ""
	for i := 0; i < 450; i++ {
		long += "word "
	}
	if got := calculateReadingTime(long); got != 3 {
		t.Fatalf("expected 3 minutes for 450 words, got %d", got)
	}
}
