// Package dumptest parses profile dumps and compares them in tests.
// It reads the "name: value" lines written by Profile.Dump, plain or styled.
package dumptest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"
)

// GoldenDir is the default directory for golden files
const GoldenDir = "testdata/golden"

var (
	ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	oscRegex  = regexp.MustCompile(`\x1b\]8;;[^\x1b]*\x1b\\`)
	pxRegex   = regexp.MustCompile(`^(-?\d+)px \((-?\d+(?:\.\d+)?)dp\)$`)
)

// Entry is one line of a dump.
type Entry struct {
	Name  string
	Value string
	// Px and Dp are set when Dimension is.
	Px        int
	Dp        float64
	Dimension bool
}

// Dump is a parsed dump. Entries keep their order.
type Dump struct {
	Entries []Entry
	index   map[string]int
}

// Parse reads a dump. ANSI styling, blank lines and "#" section headers
// are ignored.
func Parse(r io.Reader) (*Dump, error) {
	d := &Dump{index: make(map[string]int)}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(StripANSI(scanner.Text()))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		name, value, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: missing separator in %q", line, text)
		}
		e := Entry{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}
		if m := pxRegex.FindStringSubmatch(e.Value); m != nil {
			px, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			dp, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			e.Px, e.Dp, e.Dimension = px, dp, true
		}
		if _, dup := d.index[e.Name]; dup {
			return nil, fmt.Errorf("line %d: duplicate field %q", line, e.Name)
		}
		d.index[e.Name] = len(d.Entries)
		d.Entries = append(d.Entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// MustParse parses s and fails the test on error.
func MustParse(t *testing.T, s string) *Dump {
	t.Helper()
	d, err := Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("failed to parse dump: %v", err)
	}
	return d
}

// Get returns the named entry.
func (d *Dump) Get(name string) (Entry, bool) {
	i, ok := d.index[name]
	if !ok {
		return Entry{}, false
	}
	return d.Entries[i], true
}

// Names returns the field names in dump order.
func (d *Dump) Names() []string {
	out := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Name
	}
	return out
}

// Px returns the pixel value of a dimension field and fails the test if the
// field is missing or not a dimension.
func (d *Dump) Px(t *testing.T, name string) int {
	t.Helper()
	e, ok := d.Get(name)
	if !ok {
		t.Fatalf("dump has no field %q", name)
	}
	if !e.Dimension {
		t.Fatalf("field %q is not a dimension: %q", name, e.Value)
	}
	return e.Px
}

// AssertValue checks the printed value of a field.
func (d *Dump) AssertValue(t *testing.T, name, want string) {
	t.Helper()
	e, ok := d.Get(name)
	if !ok {
		t.Errorf("dump has no field %q", name)
		return
	}
	if e.Value != want {
		t.Errorf("field %q = %q, want %q", name, e.Value, want)
	}
}

// Change is a field whose value differs between two dumps. An empty From or
// To means the field is missing on that side.
type Change struct {
	Name string
	From string
	To   string
}

// Diff lists the fields that differ between a and b, sorted by name.
func Diff(a, b *Dump) []Change {
	var out []Change
	for _, e := range a.Entries {
		other, ok := b.Get(e.Name)
		if !ok {
			out = append(out, Change{Name: e.Name, From: e.Value})
			continue
		}
		if other.Value != e.Value {
			out = append(out, Change{Name: e.Name, From: e.Value, To: other.Value})
		}
	}
	for _, e := range b.Entries {
		if _, ok := a.Get(e.Name); !ok {
			out = append(out, Change{Name: e.Name, To: e.Value})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Snap compares dumps against golden files.
type Snap struct {
	t         *testing.T
	goldenDir string
	update    bool
}

// New creates a new Snap instance for the given test
func New(t *testing.T) *Snap {
	return &Snap{
		t:         t,
		goldenDir: GoldenDir,
		update:    os.Getenv("UPDATE_GOLDEN") == "1",
	}
}

// WithDir sets a custom golden file directory
func (s *Snap) WithDir(dir string) *Snap {
	s.goldenDir = dir
	return s
}

// Assert compares a dump against the golden file of the given name. Values
// are compared field by field so a mismatch names the fields that moved.
// If UPDATE_GOLDEN=1, updates the golden file instead.
func (s *Snap) Assert(name, actual string) {
	s.t.Helper()

	goldenPath := filepath.Join(s.goldenDir, name+".golden")
	normalized := normalizeOutput(actual)

	if s.update {
		if err := os.MkdirAll(s.goldenDir, 0755); err != nil {
			s.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(normalized), 0644); err != nil {
			s.t.Fatalf("failed to write golden file: %v", err)
		}
		s.t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.t.Fatalf("Golden file not found: %s\nRun with UPDATE_GOLDEN=1 to create it.\nActual output:\n%s", goldenPath, normalized)
		}
		s.t.Fatalf("failed to read golden file: %v", err)
	}
	if string(expected) == normalized {
		return
	}

	want := MustParse(s.t, string(expected))
	got := MustParse(s.t, normalized)
	changes := Diff(want, got)
	if len(changes) == 0 {
		s.t.Errorf("Snapshot mismatch for %s in field order\nRun with UPDATE_GOLDEN=1 to update.", name)
		return
	}
	var b strings.Builder
	for _, c := range changes {
		fmt.Fprintf(&b, "  %s: %q -> %q\n", c.Name, c.From, c.To)
	}
	s.t.Errorf("Snapshot mismatch for %s\n%s\nRun with UPDATE_GOLDEN=1 to update.", name, b.String())
}

// normalizeOutput strips ANSI codes and normalizes whitespace for comparison
func normalizeOutput(s string) string {
	s = StripANSI(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	s = ansiRegex.ReplaceAllString(s, "")
	return oscRegex.ReplaceAllString(s, "")
}
