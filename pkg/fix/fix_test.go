package fix_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/htmlast"
	"github.com/yaklabco/markuplint/pkg/parser/markup"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{name: "no edits", content: "abc", want: "abc"},
		{
			name:    "replace",
			content: "hello world",
			edits:   []fix.TextEdit{{StartOffset: 6, EndOffset: 11, NewText: "there"}},
			want:    "hello there",
		},
		{
			name:    "insert and delete",
			content: "abcdef",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 0, NewText: ">"},
				{StartOffset: 2, EndOffset: 4, NewText: ""},
			},
			want: ">abef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := string(fix.ApplyEdits([]byte(tt.content), tt.edits)); got != tt.want {
				t.Errorf("ApplyEdits = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	bad := [][]fix.TextEdit{
		{{StartOffset: -1, EndOffset: 0}},
		{{StartOffset: 3, EndOffset: 2}},
		{{StartOffset: 0, EndOffset: 11}},
	}
	for _, edits := range bad {
		if err := fix.ValidateEdits(edits, 10); !errors.Is(err, fix.ErrInvalidEdit) {
			t.Errorf("ValidateEdits(%v) = %v, want ErrInvalidEdit", edits, err)
		}
	}

	if err := fix.ValidateEdits([]fix.TextEdit{{StartOffset: 10, EndOffset: 10}}, 10); err != nil {
		t.Errorf("insert at end should be valid: %v", err)
	}
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	sorted, err := fix.PrepareEdits([]fix.TextEdit{
		{StartOffset: 5, EndOffset: 6, NewText: "b"},
		{StartOffset: 0, EndOffset: 1, NewText: "a"},
	}, 10)
	if err != nil {
		t.Fatalf("PrepareEdits: %v", err)
	}
	if sorted[0].StartOffset != 0 || sorted[1].StartOffset != 5 {
		t.Errorf("edits not sorted: %v", sorted)
	}

	_, err = fix.PrepareEdits([]fix.TextEdit{
		{StartOffset: 0, EndOffset: 4},
		{StartOffset: 2, EndOffset: 6},
	}, 10)
	if !errors.Is(err, fix.ErrEditConflict) {
		t.Errorf("expected ErrEditConflict, got %v", err)
	}
}

func TestNodeEdit_TextEdit(t *testing.T) {
	t.Parallel()

	source := "<a title='x' href=y disabled>\n  <!-- c --></a>"
	root := markup.Parse(source)
	element := root.Children[0]

	title := element.AttributeNamed("title")
	href := element.AttributeNamed("href")
	disabled := element.AttributeNamed("disabled")
	comment := htmlast.FindByKind(root, htmlast.NodeComment)[0]
	gap := element.Opening.Attributes[0]

	tests := []struct {
		name string
		edit fix.NodeEdit
		want string
	}{
		{
			name: "single quoted literal keeps its quote",
			edit: fix.NodeEdit{Node: title.Literal, Value: "new"},
			want: "<a title='new' href=y disabled>\n  <!-- c --></a>",
		},
		{
			name: "unquoted literal gains quotes when needed",
			edit: fix.NodeEdit{Node: href, Value: "a b"},
			want: "<a title='x' href=\"a b\" disabled>\n  <!-- c --></a>",
		},
		{
			name: "boolean attribute gains a value",
			edit: fix.NodeEdit{Node: disabled, Value: "disabled"},
			want: "<a title='x' href=y disabled=\"disabled\">\n  <!-- c --></a>",
		},
		{
			name: "comment keeps delimiters",
			edit: fix.NodeEdit{Node: comment, Value: " d "},
			want: "<a title='x' href=y disabled>\n  <!-- d --></a>",
		},
		{
			name: "text gap",
			edit: fix.NodeEdit{Node: gap, Value: "\n  "},
			want: "<a\n  title='x' href=y disabled>\n  <!-- c --></a>",
		},
		{
			name: "identifier name",
			edit: fix.NodeEdit{Node: element.Closing.Ident, Field: fix.FieldName, Value: "b"},
			want: "<a title='x' href=y disabled>\n  <!-- c --></b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			edit, err := tt.edit.TextEdit()
			if err != nil {
				t.Fatalf("TextEdit: %v", err)
			}
			if got := string(fix.ApplyEdits([]byte(source), []fix.TextEdit{edit})); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeEdit_Doctype(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   string
	}{
		{"<!doctype html>", "<!doctype svg>"},
		{"<!DOCTYPE html>", "<!DOCTYPE svg>"},
		{"<!DocType\n  html >", "<!DocType\n  svg>"},
		{"<!doctype>", "<!doctype svg>"},
		{"<!doctype html", "<!doctype svg"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			root := markup.Parse(tt.source)
			doctype := htmlast.FindByKind(root, htmlast.NodeDoctype)[0]

			edit, err := fix.NodeEdit{Node: doctype, Value: "svg"}.TextEdit()
			if err != nil {
				t.Fatalf("TextEdit: %v", err)
			}
			if got := string(fix.ApplyEdits([]byte(tt.source), []fix.TextEdit{edit})); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeEdit_Unsupported(t *testing.T) {
	t.Parallel()

	root := markup.Parse("<p>x</p>")
	element := root.Children[0]

	for _, edit := range []fix.NodeEdit{
		{Node: element, Value: "y"},
		{Node: element.Children[0], Field: fix.FieldName, Value: "y"},
		{Value: "y"},
	} {
		if _, err := edit.TextEdit(); !errors.Is(err, fix.ErrInvalidEdit) {
			t.Errorf("TextEdit(%+v) = %v, want ErrInvalidEdit", edit, err)
		}
		if err := edit.Apply(); !errors.Is(err, fix.ErrInvalidEdit) {
			t.Errorf("Apply(%+v) = %v, want ErrInvalidEdit", edit, err)
		}
	}
}

func TestNodeEdit_Apply(t *testing.T) {
	t.Parallel()

	root := markup.Parse(`<input disabled value="a">`)
	element := root.Children[0]

	value := element.AttributeNamed("value")
	if err := (fix.NodeEdit{Node: value, Value: "b"}).Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if value.Literal.Value != "b" || value.Literal.Raw != `"a"` {
		t.Errorf("Value = %q Raw = %q", value.Literal.Value, value.Literal.Raw)
	}

	disabled := element.AttributeNamed("disabled")
	if err := (fix.NodeEdit{Node: disabled, Value: "true"}).Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if disabled.Literal == nil || disabled.Literal.Value != "true" || disabled.Literal.Parent != disabled {
		t.Error("boolean attribute should receive a literal")
	}
}

func TestResolve_FirstWins(t *testing.T) {
	t.Parallel()

	source := "<a\n   b\n      c=2>"
	root := markup.Parse(source)
	attrs := root.Children[0].Opening.Attributes

	gapFix := fix.NodeEdit{Rule: "attr-indent", Node: attrs[2], Value: "\n  "}
	earlier := fix.NodeEdit{Rule: "other", Node: attrs[0], Value: "\n    "}
	repeated := fix.NodeEdit{Rule: "attr-indent", Node: attrs[0], Value: "\n  "}
	insertion := fix.NodeEdit{Rule: "other", Node: attrs[1], Value: "1"}

	plan, err := fix.Resolve([]fix.NodeEdit{gapFix, earlier, repeated, insertion}, len(source))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(plan.Accepted) != 2 || plan.Accepted[0] != earlier || plan.Accepted[1] != insertion {
		t.Fatalf("unexpected accepted edits %+v", plan.Accepted)
	}
	if len(plan.Skipped) != 2 || plan.Skipped[0] != repeated || plan.Skipped[1] != gapFix {
		t.Fatalf("unexpected skipped edits %+v", plan.Skipped)
	}

	got := string(fix.ApplyEdits([]byte(source), plan.Edits))
	if want := "<a\n    b=\"1\"\n      c=2>"; got != want {
		t.Errorf("ApplyEdits = %q, want %q", got, want)
	}
}

func TestResolve_ApplyToTree(t *testing.T) {
	t.Parallel()

	source := `<p class="a">`
	root := markup.Parse(source)
	class := root.Children[0].AttributeNamed("class")

	plan, err := fix.Resolve([]fix.NodeEdit{{Node: class.Literal, Value: "b"}}, len(source))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := plan.ApplyToTree(); err != nil {
		t.Fatalf("ApplyToTree: %v", err)
	}
	if class.Literal.Value != "b" {
		t.Errorf("Value = %q", class.Literal.Value)
	}
	if got := string(fix.ApplyEdits([]byte(source), plan.Edits)); got != `<p class="b">` {
		t.Errorf("ApplyEdits = %q", got)
	}
}

func TestResolve_InvalidEdit(t *testing.T) {
	t.Parallel()

	root := markup.Parse("<p>")
	if _, err := fix.Resolve([]fix.NodeEdit{{Rule: "r", Node: root}}, 3); !errors.Is(err, fix.ErrInvalidEdit) {
		t.Errorf("expected ErrInvalidEdit, got %v", err)
	}
}
