// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"strings"
	"testing"
)

func TestHelpLayout(t *testing.T) {
	a, _, _ := newTestArguments(t)
	var (
		all    bool
		jobs   int
		ratio  float64
		name   Argument[string]
		quiet  bool
		output string
		file   string
		extra  []string
	)
	a.SetName("example")
	a.SetHeader("Example header")
	a.SetFooter("See the docs")
	must(t, a.SetVersion("1.0.0"))
	must(t, a.AddOption('a', "all", "show all", Var(&all)))
	must(t, a.AddOption('j', "jobs", "number of jobs", Var(&jobs)))
	must(t, a.AddOption(0, "ratio", "ratio", Var(&ratio)))
	must(t, a.AddOption('n', "name", "user name", &name))
	must(t, a.AddOption('q', "", "quiet", Var(&quiet)))
	must(t, a.AddOption('o', "output", "output file", Var(&output)))
	must(t, a.AddRequired("file", "input file", Var(&file)))
	must(t, a.AddList("extra", "extra inputs", List(&extra)))

	want := strings.Join([]string{
		"Example header",
		"",
		"Usage: example [OPTION...] file extra...",
		"",
		"  file              input file",
		"  extra...          extra inputs",
		"",
		"Options:",
		"  -a, --all         show all",
		"  -j, --jobs=NUM    number of jobs",
		"      --ratio=NUM   ratio",
		"  -n, --name=VALUE  user name",
		"  -q                quiet",
		"  -o, --output=VALUE output file",
		"  -?, --help        display this help and exit",
		"      --version     output version information and exit",
		"",
		"See the docs",
		"",
	}, "\n")
	if got := a.Help(); got != want {
		t.Errorf("Help() =\n%s\nwant\n%s", got, want)
	}
}

func TestHelpMinimal(t *testing.T) {
	tests := []struct {
		name    string
		declare func(t *testing.T, a *Arguments)
		want    string
	}{
		{
			name: "required only without help",
			declare: func(t *testing.T, a *Arguments) {
				var s string
				a.DisableHelp()
				must(t, a.AddRequired("input", "", Var(&s)))
			},
			want: "Usage: input\n\n  input\n",
		},
		{
			name: "help only",
			declare: func(t *testing.T, a *Arguments) {
				var n int
				a.SetName("tool")
				must(t, a.AddRequired("n", "count", Var(&n)))
			},
			want: "Usage: tool [OPTION...] n\n" +
				"\n" +
				"  n                 count\n" +
				"\n" +
				"Options:\n" +
				"  -?, --help        display this help and exit\n",
		},
		{
			name: "letterless and wordless",
			declare: func(t *testing.T, a *Arguments) {
				var b bool
				var s string
				a.DisableHelp()
				must(t, a.AddOption('x', "", "", Var(&b)))
				must(t, a.AddOption(0, "text", "set text", Var(&s)))
			},
			want: "Usage: [OPTION...]\n" +
				"\n" +
				"Options:\n" +
				"  -x\n" +
				"      --text=VALUE  set text\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestArguments(t)
			tt.declare(t, a)
			if got := a.Help(); got != tt.want {
				t.Errorf("Help() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestHelpGroups(t *testing.T) {
	a, _, _ := newTestArguments(t)
	var verbose, quiet bool
	var format string
	a.SetName("tool")
	must(t, a.AddGroup("Output:"))
	must(t, a.AddOption('v', "verbose", "more output", Var(&verbose)))
	must(t, a.AddOption('q', "quiet", "less output", Var(&quiet)))
	must(t, a.AddGroup("Format:"))
	must(t, a.AddOption('f', "format", "output format", Var(&format)))

	want := "Usage: tool [OPTION...]\n" +
		"\n" +
		"Options:\n" +
		"\n" +
		"Output:\n" +
		"  -v, --verbose     more output\n" +
		"  -q, --quiet       less output\n" +
		"\n" +
		"Format:\n" +
		"  -f, --format=VALUE output format\n" +
		"\n" +
		"  -?, --help        display this help and exit\n"
	if got := a.Help(); got != want {
		t.Errorf("Help() =\n%s\nwant\n%s", got, want)
	}

	// Groups do not take part in matching.
	checkProcess(t, a, []string{"-vq", "--format=json"}, true, "")
	if !verbose || !quiet || format != "json" {
		t.Errorf("verbose, quiet, format = %v, %v, %q", verbose, quiet, format)
	}

	if err := a.AddGroup(""); err == nil {
		t.Error("AddGroup(\"\") succeeded, want error")
	}
}

func TestHelpSlashPrefixes(t *testing.T) {
	a, _, _ := newTestArguments(t)
	must(t, a.SetSlashOptions(true))
	var jobs int
	var all bool
	must(t, a.AddOption('j', "jobs", "number of jobs", Var(&jobs)))
	must(t, a.AddOption(0, "all", "everything", Var(&all)))
	must(t, a.SetVersion("2"))

	want := "Usage: [OPTION...]\n" +
		"\n" +
		"Options:\n" +
		"  /j, /jobs=NUM     number of jobs\n" +
		"      /all          everything\n" +
		"  /?, /help         display this help and exit\n" +
		"      /version      output version information and exit\n"
	if got := a.Help(); got != want {
		t.Errorf("Help() =\n%s\nwant\n%s", got, want)
	}
}

func TestHelpWrittenByParse(t *testing.T) {
	a, stdout, _ := newTestArguments(t)
	var v bool
	must(t, a.AddOption('v', "verbose", "more output", Var(&v)))
	checkProcess(t, a, []string{"-v", "-?"}, false, "")
	if got, want := stdout.String(), a.Help(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if v {
		t.Error("verbose set although help short-circuits parsing")
	}
}
