package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestLoadAll_MergesInInputOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.fsl", `collection A { id: String }`)
	b := writeFile(t, dir, "b.fsl", `collection B { id: String }`)
	c := writeFile(t, dir, "c.fsl", `collection C { id: String }`)

	tree, err := LoadAll(context.Background(), []string{c, a, b})
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	defer tree.Dispose()

	if tree.Length() != 3 {
		t.Fatalf("Length() = %d, want 3", tree.Length())
	}
	names := []string{tree.Decls[0].Name(), tree.Decls[1].Name(), tree.Decls[2].Name()}
	want := []string{"C", "A", "B"}
	for i, w := range want {
		if names[i] != w {
			t.Errorf("Decls[%d] = %s, want %s", i, names[i], w)
		}
	}
}

func TestLoadAll_ParseErrorDisposesAndFails(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.fsl", `collection A { id: String }`)
	bad := writeFile(t, dir, "bad.fsl", `collection { id: String }`)

	_, err := LoadAll(context.Background(), []string{good, bad})
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadAll_MissingFileFails(t *testing.T) {
	_, err := LoadAll(context.Background(), []string{"/no/such/file.fsl"})
	if err == nil {
		t.Fatal("expected a read error")
	}
}
