package session

import (
	"slices"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestParseScript(t *testing.T) {
	script := `
# build an interview
template interview 2
insert paragraph {html: "<p>Hello world</p>"}
	update $last   {html: "<p>x</p>"}

unfocus
move @1 down
`
	ops, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}

	want := []Op{
		{Line: 3, Name: "template", Args: []string{"interview", "2"}},
		{Line: 4, Name: "insert", Args: []string{"paragraph"}, Payload: `{html: "<p>Hello world</p>"}`},
		{Line: 5, Name: "update", Args: []string{"$last"}, Payload: `{html: "<p>x</p>"}`},
		{Line: 7, Name: "unfocus"},
		{Line: 8, Name: "move", Args: []string{"@1", "down"}},
	}
	if len(ops) != len(want) {
		t.Fatalf("ParseScript() returned %d ops, want %d", len(ops), len(want))
	}
	for i := range want {
		if ops[i].Line != want[i].Line || ops[i].Name != want[i].Name ||
			!slices.Equal(ops[i].Args, want[i].Args) || ops[i].Payload != want[i].Payload {
			t.Errorf("op %d = %#v, want %#v", i, ops[i], want[i])
		}
	}
	if got := ops[1].String(); got != `insert paragraph {html: "<p>Hello world</p>"}` {
		t.Errorf("String() = %q", got)
	}
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"unknown op", "explode b1", `unknown op "explode"`},
		{"missing argument", "move b1", "usage: move ID up|down"},
		{"missing content", "update b1", "content is missing"},
		{"trailing", "delete b1 b2", `unexpected "b2"`},
		{"too many units", "template pictorial 3 4", `unexpected "4"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tt.line))
			if err == nil {
				t.Fatal("ParseScript() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.HasPrefix(err.Error(), "line 1:") {
				t.Errorf("ParseScript() error = %v, want line 1 and %q", err, tt.want)
			}
		})
	}
}

func TestParseScript_CollectsAll(t *testing.T) {
	ops, err := ParseScript(strings.NewReader("delete\ninsert image\nbogus\nfocus"))
	if got := len(multierr.Errors(err)); got != 3 {
		t.Errorf("ParseScript() reported %d errors, want 3: %v", got, err)
	}
	if len(ops) != 1 || ops[0].Name != "insert" {
		t.Errorf("ParseScript() ops = %v", ops)
	}
}

func TestOpNames(t *testing.T) {
	names := OpNames()
	if len(names) != len(shapes) {
		t.Fatalf("OpNames() = %d names, want %d", len(names), len(shapes))
	}
	if !slices.IsSorted(names) {
		t.Errorf("OpNames() not sorted: %v", names)
	}
	for _, n := range names {
		if !strings.HasPrefix(Usage(n), n) {
			t.Errorf("Usage(%q) = %q", n, Usage(n))
		}
	}
	if Usage("nope") != "" {
		t.Error("Usage() of unknown op must be empty")
	}
}
