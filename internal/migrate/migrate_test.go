package migrate

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestParseVersion(t *testing.T) {
	tests := map[string]struct {
		want    int
		wantErr bool
	}{
		"0001_stopwatch_sessions.sql": {want: 1},
		"0042_add_index.sql":          {want: 42},
		"_nothing.sql":                {wantErr: true},
		"noprefix.sql":                {wantErr: true},
		"abc_def.sql":                 {wantErr: true},
	}
	for name, tt := range tests {
		got, err := parseVersion(name)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", name)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("%s: got %d, %v; want %d", name, got, err, tt.want)
		}
	}
}

func TestPendingSkipsAppliedAndOrders(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/0010_later.sql":  {Data: []byte("SELECT 10;")},
		"sql/0002_second.sql": {Data: []byte("SELECT 2;")},
		"sql/0001_first.sql":  {Data: []byte("SELECT 1;")},
	}
	todo, err := pending(fsys, map[int]bool{1: true})
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(todo) != 2 || todo[0].version != 2 || todo[1].version != 10 {
		t.Fatalf("unexpected pending set: %+v", todo)
	}
	if todo[1].body != "SELECT 10;" {
		t.Fatalf("unexpected body %q", todo[1].body)
	}
}

func TestPendingRejectsDuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/0001_a.sql": {Data: []byte("SELECT 1;")},
		"sql/1_b.sql":    {Data: []byte("SELECT 1;")},
	}
	if _, err := pending(fsys, nil); err == nil {
		t.Fatalf("expected duplicate version error")
	}
}

func TestEmbeddedMigrationsCreateArchiveTables(t *testing.T) {
	todo, err := pending(migrationsFS, nil)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(todo) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	all := ""
	for _, m := range todo {
		all += m.body
	}
	for _, table := range []string{"stopwatch_sessions", "stopwatch_intervals"} {
		if !strings.Contains(all, table) {
			t.Fatalf("migrations do not create %s", table)
		}
	}
}
