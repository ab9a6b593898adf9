// Package availability covers the lawyer-side weekly slot editor and the
// slot validation rules shared with the booking flow.
package availability

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"lawconnect/models"
	"lawconnect/utils"
)

// timeRe matches a zero-padded 24h "HH:MM" time. Because both halves are
// zero-padded, string comparison of start and end equals chronological
// comparison.
var timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateSlot checks one "HH:MM-HH:MM" range: both halves present,
// well-formed, and start strictly before end.
func ValidateSlot(slot string) error {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return fmt.Errorf("slot %q must be of the form HH:MM-HH:MM", slot)
	}
	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if start == "" || end == "" {
		return fmt.Errorf("slot %q is missing a start or end time", slot)
	}
	if !timeRe.MatchString(start) || !timeRe.MatchString(end) {
		return fmt.Errorf("slot %q has an invalid time", slot)
	}
	if start >= end {
		return fmt.Errorf("slot %q must start before it ends", slot)
	}
	return nil
}

// BackendAPI is the slice of the REST client this package needs.
type BackendAPI interface {
	LawyerAvailability(ctx context.Context, lawyerID string) (*models.WeeklyAvailability, error)
	CheckSlots(ctx context.Context, lawyerID, date string) ([]string, error)
	SetAvailability(ctx context.Context, day models.DayAvailability) error
}

// Editor saves and reads a lawyer's weekly slot set.
type Editor struct {
	backend  BackendAPI
	notifier utils.Notifier
	logger   *zap.Logger
}

func NewEditor(backend BackendAPI, notifier utils.Notifier) *Editor {
	return &Editor{backend: backend, notifier: notifier, logger: utils.GetLogger()}
}

// Save validates every slot for a day and stores the set, ordered by start
// time. Validation failures never reach the network.
func (e *Editor) Save(ctx context.Context, day models.DayAvailability) error {
	if !isWeekDay(day.Day) {
		e.notifier.Error("Unknown day of week")
		return fmt.Errorf("unknown day %q", day.Day)
	}
	for _, slot := range day.TimeSlots {
		if err := ValidateSlot(slot); err != nil {
			e.notifier.Error("Invalid time slot: " + slot)
			return err
		}
	}
	sort.Strings(day.TimeSlots)

	if err := e.backend.SetAvailability(ctx, day); err != nil {
		e.notifier.Error("Could not save availability")
		return err
	}
	e.logger.Info("availability saved",
		zap.String("day", day.Day),
		zap.Int("slots", len(day.TimeSlots)))
	e.notifier.Success("Availability saved")
	return nil
}

// Weekly fetches the lawyer's full per-day slot set.
func (e *Editor) Weekly(ctx context.Context, lawyerID string) (*models.WeeklyAvailability, error) {
	return e.backend.LawyerAvailability(ctx, lawyerID)
}

// DaySlots returns the bookable slots for a lawyer on one calendar date.
func (e *Editor) DaySlots(ctx context.Context, lawyerID, date string) ([]string, error) {
	return e.backend.CheckSlots(ctx, lawyerID, date)
}

func isWeekDay(day string) bool {
	for _, d := range models.WeekDays {
		if d == day {
			return true
		}
	}
	return false
}
