package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arnavshah/shift-roster-go/pkg/config"
	"github.com/arnavshah/shift-roster-go/pkg/logger"
	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/arnavshah/shift-roster-go/pkg/render"
	"github.com/arnavshah/shift-roster-go/pkg/scheduler"
	"github.com/arnavshah/shift-roster-go/pkg/validation"
)

var (
	errNoInput      = errors.New("either -in or -interactive is required")
	errBinaryStdout = errors.New("xlsx output needs -out")
)

type options struct {
	in           string
	format       string
	out          string
	weekStart    string
	configFile   string
	validateOnly bool
	interactive  bool
}

func main() {
	var o options
	flag.StringVar(&o.in, "in", "", "path to a YAML or JSON file with employees and preferences")
	flag.StringVar(&o.format, "format", string(render.FormatText), "output format: text, csv, json, xlsx or ics")
	flag.StringVar(&o.out, "out", "", "write the roster to this file instead of stdout")
	flag.StringVar(&o.weekStart, "week-start", "", "any date in the week to schedule (YYYY-MM-DD), used by ics")
	flag.StringVar(&o.configFile, "config", "", "path to a YAML config file")
	flag.BoolVar(&o.validateOnly, "validate-only", false, "check the input and exit without scheduling")
	flag.BoolVar(&o.interactive, "interactive", false, "collect employees and preferences at the terminal")
	flag.Parse()

	config.LoadEnvFiles()
	if err := run(o, os.Stdin, os.Stdout, os.Stderr); err != nil {
		die("%v", err)
	}
}

func run(o options, stdin io.Reader, stdout, stderr io.Writer) error {
	format, err := render.ParseFormat(o.format)
	if err != nil {
		return err
	}
	if format == render.FormatXLSX && o.out == "" && !o.validateOnly {
		return errBinaryStdout
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var input *models.ScheduleInput
	switch {
	case o.interactive:
		input, err = newPrompter(stdin, stdout).collect()
	case o.in != "":
		input, err = loadInput(o.in)
	default:
		return errNoInput
	}
	if err != nil {
		return err
	}
	if o.weekStart != "" {
		input.WeekStart = o.weekStart
	}

	plan, res, err := validation.Build(input)
	for _, w := range res.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}
	if o.validateOnly {
		return report(stdout, res)
	}
	if err != nil {
		for _, e := range res.Errors {
			fmt.Fprintf(stderr, "error: %s\n", e)
		}
		return validation.ErrInvalidInput
	}

	weekStart := time.Now()
	if input.WeekStart != "" {
		if weekStart, err = time.Parse("2006-01-02", input.WeekStart); err != nil {
			return fmt.Errorf("week start %q: %w", input.WeekStart, err)
		}
	}

	s := scheduler.NewScheduler(scheduler.Options{
		MaxDaysPerWeek:       cfg.Scheduler.MaxDaysPerWeek,
		MinEmployeesPerShift: cfg.Scheduler.MinEmployeesPerShift,
	}, log)
	known := make(map[string]bool, len(plan.Registrations))
	for _, reg := range plan.Registrations {
		s.Register(reg.Name, reg.Preferences)
		known[reg.Name] = true
	}
	warnings := res.Warnings
	for i, a := range plan.Prefill {
		if known[a.Employee] && !s.Prefill(a.Employee, a.Day, a.Shift) {
			w := fmt.Sprintf("current_assignments[%d]: %s on %s/%s skipped", i, a.Employee, a.Day, a.Shift)
			warnings = append(warnings, w)
			fmt.Fprintf(stderr, "warning: %s\n", w)
		}
	}

	if o.interactive {
		fmt.Fprintf(stdout, "\n%s\nProcessing schedule...\n", strings.Repeat("=", 60))
	}
	s.Run()

	resp := s.Response(uuid.NewString(), warnings)
	doc := render.Document{
		Roster:    s.Schedule(),
		Workload:  s.Workload(),
		Response:  &resp,
		WeekStart: weekStart,
	}

	if o.out == "" {
		return render.Write(stdout, format, doc)
	}
	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := render.Write(f, format, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "wrote %s roster to %s\n", format, o.out)
	return nil
}

func report(w io.Writer, res validation.Result) error {
	if !res.Valid {
		for _, e := range res.Errors {
			fmt.Fprintf(w, "error: %s\n", e)
		}
		return validation.ErrInvalidInput
	}
	fmt.Fprintf(w, "input is valid: %d employees, %d requested days, %d current assignments\n",
		res.Stats.EmployeeCount, res.Stats.RequestedDays, res.Stats.CurrentAssigns)
	return nil
}

func die(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
