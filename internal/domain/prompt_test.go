package domain

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestCloneIsDeep(t *testing.T) {
	p := &Prompt{ID: 1, Title: "a", Prompt: "b", Remark: strPtr("r"), Website: strPtr("w"), Tags: []string{"x"}}
	cp := p.Clone()
	if !reflect.DeepEqual(cp, p) {
		t.Fatalf("Clone() = %+v, want %+v", cp, p)
	}

	*cp.Remark = "changed"
	*cp.Website = "changed"
	cp.Tags[0] = "changed"
	if *p.Remark != "r" || *p.Website != "w" || p.Tags[0] != "x" {
		t.Errorf("Clone() shares memory with the original: %+v", p)
	}
}

func TestZeroTimesAreOmitted(t *testing.T) {
	data, err := json.Marshal(&Prompt{ID: 1, Title: "a", Prompt: "b"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "created_at") {
		t.Errorf("catalog prompt JSON = %s, want no created_at", data)
	}

	data, err = json.Marshal(Annotation{PromptID: 1})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "bookmarked_at") {
		t.Errorf("annotation JSON = %s, want no bookmarked_at", data)
	}

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	data, _ = json.Marshal(&Prompt{ID: CustomIDBase, CreatedAt: at})
	if !strings.Contains(string(data), `"created_at":"2026-01-02T03:04:05Z"`) {
		t.Errorf("custom prompt JSON = %s, want created_at", data)
	}
}

func TestSortByWeightExtremes(t *testing.T) {
	prompts := []*Prompt{
		{ID: 1, Weight: math.MinInt},
		{ID: 2, Weight: math.MaxInt},
		{ID: 3, Weight: 0},
	}
	if got := ids(SortByWeightDescending(prompts)); !reflect.DeepEqual(got, []int{2, 3, 1}) {
		t.Errorf("SortByWeightDescending() = %v, want [2 3 1]", got)
	}
}
