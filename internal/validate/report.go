package validate

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
	// StatusInfo marks descriptive checks that carry no verdict.
	StatusInfo Status = "INFO"
)

type Check struct {
	Name   string
	Status Status
	Detail string
	Lines  []string
}

type Report struct {
	GeneratedAt time.Time
	Checks      []Check
}

func (r *Report) Add(c Check) {
	r.Checks = append(r.Checks, c)
}

func (r *Report) Tally() (pass, warn, fail int) {
	for _, c := range r.Checks {
		switch c.Status {
		case StatusPass:
			pass++
		case StatusWarn:
			warn++
		case StatusFail:
			fail++
		}
	}
	return pass, warn, fail
}

func (r *Report) Failed() bool {
	_, _, fail := r.Tally()
	return fail > 0
}

func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Registry validation report (%s)\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintln(&sb, strings.Repeat("-", 64))
	for _, c := range r.Checks {
		fmt.Fprintf(&sb, "[%s] %-40s %s\n", c.Status, c.Name, c.Detail)
		for _, line := range c.Lines {
			fmt.Fprintf(&sb, "       %s\n", line)
		}
	}
	pass, warn, fail := r.Tally()
	fmt.Fprintln(&sb, strings.Repeat("-", 64))
	fmt.Fprintf(&sb, "pass=%d warn=%d fail=%d\n", pass, warn, fail)
	return sb.String()
}
