package catalogfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

func TestMapperMapPrompts(t *testing.T) {
	remark := "Translate other languages into English."
	config := CatalogConfig{
		{ID: 1, Title: "  English translator ", Prompt: "  keep my spaces ", Remark: &remark, Tags: []string{"Language"}, Weight: 14572},
		{ID: 2, Title: "Writing assistant", Prompt: "improve", Tags: []string{"favorite", "write"}, Weight: 61198},
	}

	mapper := NewMapper()
	prompts := mapper.MapPrompts(config)

	if len(prompts) != 2 {
		t.Fatalf("MapPrompts() returned %d prompts, want 2", len(prompts))
	}

	first := prompts[0]
	if first.ID != 1 || first.Title != "English translator" {
		t.Errorf("first prompt = %d %q", first.ID, first.Title)
	}
	if first.Prompt != "  keep my spaces " {
		t.Errorf("prompt text must be kept verbatim, got %q", first.Prompt)
	}
	if first.Remark == nil || *first.Remark != remark {
		t.Errorf("remark = %v", first.Remark)
	}
	if prompts[1].ID != 2 {
		t.Error("MapPrompts() must keep authoring order")
	}
}

func TestLoadCatalogDuplicateID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `- {id: 7, title: a, prompt: x}
- {id: 7, title: b, prompt: y}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	_, err := LoadCatalog(path)
	if !errors.Is(err, domain.ErrCatalogLoad) {
		t.Fatalf("LoadCatalog() error = %v, want ErrCatalogLoad", err)
	}

	var loadErr *domain.CatalogLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("LoadCatalog() error should be a *CatalogLoadError, got %T", err)
	}
	if loadErr.ID != 7 || loadErr.Index != 1 {
		t.Errorf("CatalogLoadError = %+v, want id 7 at index 1", loadErr)
	}
}

func TestLoadCatalogEmbedded(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog(embedded) error = %v", err)
	}

	all := c.All()
	if len(all) != 277 {
		t.Errorf("embedded catalog has %d prompts, want 277", len(all))
	}
	if all[0].ID != 1 || all[0].Title != "English translator" {
		t.Errorf("first prompt = %d %q, want authoring order", all[0].ID, all[0].Title)
	}

	// every record resolves to itself by id
	for _, p := range all {
		got, err := c.Get(p.ID)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", p.ID, err)
		}
		if !reflect.DeepEqual(got, p) {
			t.Errorf("Get(%d) is not deep-equal to the listed record", p.ID)
		}
	}

	socrat := domain.Search(all, "socrat")
	var found []int
	for _, p := range socrat {
		if p.ID == 78 || p.ID == 79 {
			found = append(found, p.ID)
		}
	}
	if !reflect.DeepEqual(found, []int{78, 79}) {
		t.Errorf("Search(socrat) should contain ids 78 and 79, got %v", found)
	}
}
