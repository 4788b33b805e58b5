package render

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

const productID = "-//shift-roster-go//Weekly Roster//EN"

// ICS builds a calendar with one event per assignment for the week containing
// weekStart. Event UIDs are stable for the same week, cell and employee.
func ICS(roster models.Roster, weekStart time.Time) string {
	monday := models.WeekStart(weekStart)
	stamp := time.Now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, day := range models.Days {
		date := monday.AddDate(0, 0, int(day))
		for _, shift := range models.Shifts {
			offset, length := shift.Hours()
			start := date.Add(offset)
			for _, name := range roster.Employees(day, shift) {
				key := fmt.Sprintf("%s/%s/%s", date.Format("2006-01-02"), shift, name)
				event := cal.AddEvent(uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String())
				event.SetDtStampTime(stamp)
				event.SetStartAt(start)
				event.SetEndAt(start.Add(length))
				event.SetSummary(fmt.Sprintf("%s shift: %s", shift, name))
				event.SetDescription(fmt.Sprintf("%s works the %s shift on %s", name, shift, day))
			}
		}
	}
	return cal.Serialize()
}
