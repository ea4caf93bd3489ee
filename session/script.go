package session

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/multierr"
)

// Op is a single script instruction. Script is line oriented:
//
//	# comment
//	insert paragraph {html: "<p>Hello</p>"}
//	template interview 4
//	link @1
//	complete $last
//
// Positional arguments are separated by white space, everything after the
// last positional argument of the op is its payload (YAML or JSON).
type Op struct {
	Line    int
	Name    string
	Args    []string
	Payload string
}

func (o Op) String() string {
	parts := append([]string{o.Name}, o.Args...)
	if o.Payload != "" {
		parts = append(parts, o.Payload)
	}
	return strings.Join(parts, " ")
}

type payloadMode int

const (
	payloadNone payloadMode = iota
	payloadOptional
	payloadRequired
)

type opShape struct {
	args     int
	optional int
	payload  payloadMode
	usage    string
}

var shapes = map[string]opShape{
	"insert":      {args: 1, payload: payloadOptional, usage: "insert KIND [CONTENT]"},
	"layout":      {args: 1, usage: "layout NAME"},
	"update":      {args: 1, payload: payloadRequired, usage: "update ID CONTENT"},
	"update-side": {args: 2, payload: payloadRequired, usage: "update-side PAIR SIDE CONTENT"},
	"upload":      {args: 2, usage: "upload ID FILE"},
	"upload-side": {args: 3, usage: "upload-side PAIR SIDE FILE"},
	"move":        {args: 2, usage: "move ID up|down"},
	"duplicate":   {args: 1, usage: "duplicate ID"},
	"delete":      {args: 1, usage: "delete ID"},
	"focus":       {args: 1, usage: "focus ID"},
	"unfocus":     {usage: "unfocus"},
	"link":        {args: 1, usage: "link ID"},
	"complete":    {args: 1, usage: "complete ID"},
	"swap":        {args: 1, usage: "swap PAIR"},
	"break":       {args: 1, usage: "break PAIR"},
	"template":    {args: 1, optional: 1, usage: "template NAME [UNITS]"},
}

// OpNames returns all known op names, sorted.
func OpNames() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Usage returns short synopsis of the op.
func Usage(name string) string {
	return shapes[name].usage
}

// ParseScript reads ops from r. All malformed lines are reported together.
func ParseScript(r io.Reader) ([]Op, error) {
	var (
		ops  []Op
		errs error
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		op, err := parseOp(n, line)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("unable to read script: %w", err))
	}
	return ops, errs
}

func parseOp(n int, line string) (Op, error) {
	name, rest := cut(line)
	shape, ok := shapes[name]
	if !ok {
		return Op{}, fmt.Errorf("line %d: unknown op %q", n, name)
	}

	op := Op{Line: n, Name: name}
	for i := 0; i < shape.args+shape.optional && rest != ""; i++ {
		var arg string
		arg, rest = cut(rest)
		op.Args = append(op.Args, arg)
	}
	if len(op.Args) < shape.args {
		return Op{}, fmt.Errorf("line %d: not enough arguments, usage: %s", n, shape.usage)
	}

	switch shape.payload {
	case payloadNone:
		if rest != "" {
			return Op{}, fmt.Errorf("line %d: unexpected %q, usage: %s", n, rest, shape.usage)
		}
	case payloadRequired:
		if rest == "" {
			return Op{}, fmt.Errorf("line %d: content is missing, usage: %s", n, shape.usage)
		}
		fallthrough
	default:
		op.Payload = rest
	}
	return op, nil
}

func cut(s string) (head, tail string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}
