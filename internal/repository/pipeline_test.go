package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestPipelineFilterRewritesPlaceholders(t *testing.T) {
	id := uuid.New()
	sql, args := NewPipeline("videos v").
		Project("v.id", "v.title").
		Filter("v.is_published = true").
		Filter("v.owner_id = ?", id).
		SQL()

	want := "SELECT v.id, v.title FROM videos v WHERE v.is_published = true AND v.owner_id = $1 ORDER BY created_at DESC"
	if sql != want {
		t.Errorf("SQL = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != id {
		t.Errorf("args = %v, want [%v]", args, id)
	}
}

func TestPipelineDeriveNumbersArgsInCallOrder(t *testing.T) {
	actor := uuid.New()
	owner := uuid.New()
	sql, args := NewPipeline("videos v").
		Project("v.id").
		Filter("v.owner_id = ?", owner).
		Derive("EXISTS(SELECT 1 FROM reactions r WHERE r.target_id = v.id AND r.actor_id = ?)", "is_liked", actor).
		SQL()

	if !strings.Contains(sql, "r.actor_id = $2) AS is_liked") {
		t.Errorf("derive placeholder not numbered after filter arg: %q", sql)
	}
	if !strings.Contains(sql, "v.owner_id = $1") {
		t.Errorf("filter placeholder wrong: %q", sql)
	}
	if len(args) != 2 || args[0] != owner || args[1] != actor {
		t.Errorf("args = %v, want [owner, actor]", args)
	}
}

func TestPipelineSearchSkippedWhenEmpty(t *testing.T) {
	sql, args := NewPipeline("videos v").
		Project("v.id").
		Search("to_tsvector('english', v.title)", "").
		SQL()

	if strings.Contains(sql, "tsquery") {
		t.Errorf("empty search query must skip the stage, got %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestPipelineSearchAppliedWhenPresent(t *testing.T) {
	sql, args := NewPipeline("videos v").
		Project("v.id").
		Search("to_tsvector('english', v.title || ' ' || v.description)", "cats").
		SQL()

	if !strings.Contains(sql, "plainto_tsquery('english', $1)") {
		t.Errorf("search stage missing: %q", sql)
	}
	if len(args) != 1 || args[0] != "cats" {
		t.Errorf("args = %v, want [cats]", args)
	}
}

func TestPipelineSortWhitelist(t *testing.T) {
	allowed := map[string]string{"views": "v.views", "createdAt": "v.created_at"}

	sql, _ := NewPipeline("videos v").Project("v.id").
		Sort("views", "asc", allowed).SQL()
	if !strings.HasSuffix(sql, "ORDER BY v.views ASC") {
		t.Errorf("whitelisted sort not applied: %q", sql)
	}

	// Unknown field keeps the default.
	sql, _ = NewPipeline("videos v").Project("v.id").
		Sort("password_hash", "asc", allowed).SQL()
	if !strings.HasSuffix(sql, "ORDER BY created_at DESC") {
		t.Errorf("unknown sort field must fall back to default: %q", sql)
	}

	// Field without direction keeps the default.
	sql, _ = NewPipeline("videos v").Project("v.id").
		Sort("views", "", allowed).SQL()
	if !strings.HasSuffix(sql, "ORDER BY created_at DESC") {
		t.Errorf("missing direction must fall back to default: %q", sql)
	}
}

func TestPipelinePaginate(t *testing.T) {
	sql, _ := NewPipeline("videos v").Project("v.id").Paginate(10, 20).SQL()
	if !strings.HasSuffix(sql, "LIMIT 10 OFFSET 20") {
		t.Errorf("pagination missing: %q", sql)
	}

	sql, _ = NewPipeline("videos v").Project("v.id").SQL()
	if strings.Contains(sql, "LIMIT") {
		t.Errorf("unpaginated view must not emit LIMIT: %q", sql)
	}
}

func TestPipelineCountDropsDeriveSortPaginate(t *testing.T) {
	actor := uuid.New()
	video := uuid.New()
	p := NewPipeline("comments c").
		Project("c.id", "c.content").
		Join("JOIN users u ON u.id = c.owner_id").
		Filter("c.video_id = ?", video).
		Derive("EXISTS(SELECT 1 FROM reactions r WHERE r.actor_id = ?)", "is_liked", actor).
		Paginate(10, 0)

	sql, args := p.CountSQL()
	want := "SELECT count(*) FROM comments c JOIN users u ON u.id = c.owner_id WHERE c.video_id = $1"
	if sql != want {
		t.Errorf("CountSQL = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != video {
		t.Errorf("count args = %v, want only the filter arg", args)
	}
}

func TestPipelineCountRenumbersAfterDeriveArgs(t *testing.T) {
	actor := uuid.New()
	video := uuid.New()
	// Derive binds $1 before the filter binds $2; the count query must
	// renumber the surviving filter placeholder back to $1.
	p := NewPipeline("comments c").
		Project("c.id").
		Derive("EXISTS(SELECT 1 FROM reactions r WHERE r.actor_id = ?)", "is_liked", actor).
		Filter("c.video_id = ?", video)

	sql, args := p.CountSQL()
	if !strings.Contains(sql, "c.video_id = $1") {
		t.Errorf("count placeholder not renumbered: %q", sql)
	}
	if len(args) != 1 || args[0] != video {
		t.Errorf("count args = %v, want [video]", args)
	}
}

func TestPipelineSortDefaultOverride(t *testing.T) {
	sql, _ := NewPipeline("playlist_videos pv").
		Project("pv.video_id").
		SortDefault("pv.position ASC, pv.added_at ASC").
		SQL()
	if !strings.HasSuffix(sql, "ORDER BY pv.position ASC, pv.added_at ASC") {
		t.Errorf("sort default override not applied: %q", sql)
	}
}
