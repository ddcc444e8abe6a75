package schedule

import (
	"net/url"
)

const calendarBaseURL = "https://www.google.com/calendar/event"

// CalendarLink builds a Google Calendar event-template deep link for the
// given title and window. The details text (typically the invite
// permalink) is embedded so the calendar entry points back to the
// originating message.
func CalendarLink(title string, window *Window, details string) string {
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", title)
	q.Set("dates", window.FormatRange())
	if details != "" {
		q.Set("details", details)
	}
	return calendarBaseURL + "?" + q.Encode()
}
