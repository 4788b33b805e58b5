package main

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestPrompter_Collect(t *testing.T) {
	script := strings.Join([]string{
		"abc", "0", "2",
		// Alice
		"", "Alice", "7", "2",
		"Funday", "monday", "morning", "Morning", "evening", "",
		"Monday", "friday", "afternoon", "morning", "evening",
		// Bob
		"Bob", "1", "sunday", "evening", "",
	}, "\n") + "\n"
	var out bytes.Buffer

	input, err := newPrompter(strings.NewReader(script), &out).collect()
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	if len(input.Employees) != 2 {
		t.Fatalf("Expected 2 employees, got %d", len(input.Employees))
	}
	alice := input.Employees[0]
	if alice.Name != "Alice" {
		t.Errorf("Expected Alice, got %q", alice.Name)
	}
	want := map[string][]string{
		"Monday": {"Morning", "Evening"},
		"Friday": {"Afternoon", "Morning", "Evening"},
	}
	if !reflect.DeepEqual(alice.Preferences, want) {
		t.Errorf("Expected %v, got %v", want, alice.Preferences)
	}
	if got := input.Employees[1].Preferences["Sunday"]; !reflect.DeepEqual(got, []string{"Evening"}) {
		t.Errorf("Expected Bob's Sunday ranking [Evening], got %v", got)
	}

	transcript := out.String()
	for _, msg := range []string{
		"Invalid input. Please enter a number.",
		"Please enter at least 1 employee.",
		"Name cannot be empty.",
		"Please enter a number between 1 and 5.",
		"Invalid day. Choose from: Monday, Tuesday",
		"Monday already entered. Choose a different day.",
		"Morning already chosen. Pick a different shift.",
	} {
		if !strings.Contains(transcript, msg) {
			t.Errorf("Expected the prompt to print %q", msg)
		}
	}
}

func TestPrompter_FirstChoiceRequired(t *testing.T) {
	script := "1\nAna\n1\nTuesday\n\nnight\nevening\n\n"
	var out bytes.Buffer

	input, err := newPrompter(strings.NewReader(script), &out).collect()
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if got := input.Employees[0].Preferences["Tuesday"]; !reflect.DeepEqual(got, []string{"Evening"}) {
		t.Errorf("Expected [Evening], got %v", got)
	}
	if strings.Count(out.String(), "Invalid shift.") != 2 {
		t.Errorf("Expected a blank and an unknown first choice to be rejected:\n%s", out.String())
	}
}

func TestPrompter_EndOfInput(t *testing.T) {
	_, err := newPrompter(strings.NewReader("2\nAlice\n"), io.Discard).collect()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
	}
}
