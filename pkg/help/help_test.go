package help

import (
	"strconv"
	"strings"
	"testing"

	"github.com/MrXploisLite/CodingYok/pkg/runtime"
	"github.com/MrXploisLite/CodingYok/pkg/stdlib"
)

func TestQUICKREFContainsVersion(t *testing.T) {
	if !strings.Contains(QUICKREF, "v"+runtime.Version) {
		t.Errorf("QUICKREF does not contain version string v%s", runtime.Version)
	}
}

func TestQUICKREFListsTopics(t *testing.T) {
	for _, topic := range TopicList {
		if !strings.Contains(QUICKREF, topic) {
			t.Errorf("QUICKREF does not mention topic %q", topic)
		}
	}
}

func TestTopicListMatchesTopics(t *testing.T) {
	for _, name := range TopicList {
		if _, ok := Topics[name]; !ok {
			t.Errorf("TopicList entry %q not in Topics map", name)
		}
	}
	if len(Topics) != len(TopicList) {
		t.Errorf("expected %d topics, got %d", len(TopicList), len(Topics))
	}
}

func TestTopicsNonEmpty(t *testing.T) {
	for name, content := range Topics {
		if strings.TrimSpace(content) == "" {
			t.Errorf("topic %q has empty content", name)
		}
	}
}

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"sintaks", "sintaks"},
		{"diag", "diagnostik"},
		{"con", "contoh"},
		{"GEN", "generator"},
		{" modul ", "modul"},
	}
	for _, tt := range tests {
		name, content, err := MatchTopic(tt.query)
		if err != nil {
			t.Errorf("MatchTopic(%q) error: %v", tt.query, err)
			continue
		}
		if name != tt.want {
			t.Errorf("MatchTopic(%q) = %q, want %q", tt.query, name, tt.want)
		}
		if content == "" {
			t.Errorf("MatchTopic(%q) returned empty content", tt.query)
		}
	}
}

func TestMatchTopicErrors(t *testing.T) {
	for _, q := range []string{"tidakada", "", "__proto__"} {
		if _, _, err := MatchTopic(q); err == nil {
			t.Errorf("MatchTopic(%q) should fail", q)
		}
	}
	_, _, err := MatchTopic("k")
	if err == nil || !strings.Contains(err.Error(), "ambigu") {
		t.Errorf("expected ambiguity error for 'k', got %v", err)
	}
}

func TestStdlibIndex(t *testing.T) {
	idx := StdlibIndex()
	for _, name := range []string{"panjang", "ke_json", "format_rupiah", "cari_pola"} {
		if !strings.Contains(idx, name) {
			t.Errorf("StdlibIndex missing %s", name)
		}
	}
	reg := stdlib.NewRegistry()
	stdlib.RegisterDefaults(reg)
	want := "Total: " + strconv.Itoa(len(reg.Names())) + " fungsi"
	if !strings.Contains(idx, want) {
		t.Errorf("StdlibIndex should report %q, got:\n%s", want, idx)
	}
}
