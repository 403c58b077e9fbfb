package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompterConfirm(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		def     bool
		want    bool
		wantErr bool
	}{
		{name: "default on empty", input: "\n", def: true, want: true},
		{name: "default on eof", input: "", def: false, want: false},
		{name: "explicit yes", input: "YES\n", def: false, want: true},
		{name: "retry then no", input: "maybe\nn\n", def: true, want: false},
		{name: "garbage at eof", input: "maybe", def: true, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := newPrompter(strings.NewReader(tc.input), &out).confirm("Continue?", tc.def)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("expected %v, got %v (%v)", tc.want, got, err)
			}
		})
	}
}

func TestPrompterAsk(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("\n  results  \n"), &out)
	got, err := p.ask("Results folder", ".learnbench/results")
	if err != nil || got != ".learnbench/results" {
		t.Fatalf("expected default, got %q (%v)", got, err)
	}
	got, err = p.ask("Results folder", "")
	if err != nil || got != "results" {
		t.Fatalf("expected trimmed answer, got %q (%v)", got, err)
	}
	if !strings.Contains(out.String(), "Results folder [.learnbench/results]: ") {
		t.Fatalf("unexpected prompt output: %q", out.String())
	}
	if _, err := newPrompter(strings.NewReader(""), &out).ask("Name", ""); err == nil {
		t.Fatalf("expected missing input error")
	}
}
