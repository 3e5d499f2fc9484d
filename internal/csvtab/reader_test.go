package csvtab

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadProjectsByHeaderName(t *testing.T) {
	in := "b,a,c\n1,2,3\n4,5,6\n"
	tab, err := Read(strings.NewReader(in), []string{"a", "b"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"2", "1"}, {"5", "4"}}
	if !reflect.DeepEqual(tab.Rows, want) {
		t.Fatalf("Rows = %v, want %v", tab.Rows, want)
	}
}

func TestReadMissingColumnIsError(t *testing.T) {
	in := "a,b\n1,2\n"
	_, err := Read(strings.NewReader(in), []string{"a", "nope"}, Options{})
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("err = %v, want missing-column error naming the column", err)
	}
}

func TestReadEmptyInputIsError(t *testing.T) {
	if _, err := Read(strings.NewReader(""), []string{"a"}, Options{}); err == nil {
		t.Fatal("empty input accepted")
	}
}

func TestReadSkipsShortRows(t *testing.T) {
	in := "a,b\n1,2\nonly_one\n3,4\n"
	tab, err := Read(strings.NewReader(in), []string{"a", "b"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Rows) != 2 || tab.Skipped != 1 {
		t.Fatalf("rows=%d skipped=%d, want 2 rows and 1 skipped", len(tab.Rows), tab.Skipped)
	}
}

func TestReadStripsBOM(t *testing.T) {
	in := "\uFEFFa,b\n1,2\n"
	tab, err := Read(strings.NewReader(in), []string{"a"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Rows) != 1 || tab.Rows[0][0] != "1" {
		t.Fatalf("Rows = %v", tab.Rows)
	}
}

func TestReadCustomDelimiter(t *testing.T) {
	in := "a;b\n1;2\n"
	tab, err := Read(strings.NewReader(in), []string{"b"}, Options{Comma: ';'})
	if err != nil {
		t.Fatal(err)
	}
	if tab.Rows[0][0] != "2" {
		t.Fatalf("Rows = %v", tab.Rows)
	}
}

func TestFoldHeader(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Category", "category"},
		{"  Weight Grams ", "weight_grams"},
		{"Catégorie", "categorie"},
		{"event_id", "event_id"},
	}
	for _, c := range cases {
		if got := FoldHeader(c.in); got != c.want {
			t.Errorf("FoldHeader(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
