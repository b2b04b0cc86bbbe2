// package calendar books mock interviews on Google Calendar and produces the
// fallback meeting link used when booking is not possible.
package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/YusovID/campus-prep/internal/config"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/pkg/logger/sl"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const primaryCalendar = "primary"

var scopes = []string{
	gcal.CalendarScope,
	gcal.CalendarEventsScope,
}

type Google struct {
	oauth    *oauth2.Config
	location *time.Location
	endpoint string
	log      *slog.Logger
}

func NewGoogle(cfg config.Calendar, log *slog.Logger) (*Google, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar time zone %q: %w", cfg.TimeZone, err)
	}

	return &Google{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		location: loc,
		endpoint: cfg.Endpoint,
		log:      log,
	}, nil
}

// Configured reports whether OAuth client credentials are present.
func (g *Google) Configured() bool {
	return g.oauth.ClientID != "" && g.oauth.ClientSecret != ""
}

// AuthURL returns the consent page URL. Offline access with forced consent
// makes Google return a refresh token every time.
func (g *Google) AuthURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a grant owned by userID.
func (g *Google) Exchange(ctx context.Context, userID, code string) (*domain.CalendarGrant, error) {
	const op = "internal.calendar.google.Exchange"

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, apperrors.ErrCalendarRemote, err)
	}

	return &domain.CalendarGrant{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.Type(),
		Expiry:       token.Expiry,
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

func (g *Google) service(ctx context.Context, grant *domain.CalendarGrant) (*gcal.Service, error) {
	token := &oauth2.Token{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		TokenType:    grant.TokenType,
		Expiry:       grant.Expiry,
	}

	opts := []option.ClientOption{
		option.WithHTTPClient(oauth2.NewClient(ctx, g.oauth.TokenSource(ctx, token))),
	}
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}

	return gcal.NewService(ctx, opts...)
}

func (g *Google) CreateInterviewEvent(
	ctx context.Context,
	grant *domain.CalendarGrant,
	ev domain.InterviewEvent,
) (*domain.CalendarEvent, error) {
	const op = "internal.calendar.google.CreateInterviewEvent"
	log := g.log.With(slog.String("op", op), slog.String("request_id", ev.RequestID))

	if grant == nil {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrCalendarNotAuthorized)
	}

	svc, err := g.service(ctx, grant)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, apperrors.ErrCalendarRemote, err)
	}

	created, err := svc.Events.Insert(primaryCalendar, g.buildEvent(ev)).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, apperrors.ErrCalendarRemote, err)
	}

	link := meetingLink(created)
	if link == "" {
		log.Warn("calendar event has no meeting link, removing it", slog.String("event_id", created.Id))

		if err := svc.Events.Delete(primaryCalendar, created.Id).Context(ctx).Do(); err != nil {
			log.Warn("failed to remove calendar event", slog.String("event_id", created.Id), sl.Err(err))
		}

		return nil, fmt.Errorf("%s: %w: event has no meeting link", op, apperrors.ErrCalendarRemote)
	}

	log.Info("calendar event created", slog.String("event_id", created.Id))

	return &domain.CalendarEvent{EventID: created.Id, MeetingLink: link}, nil
}

func (g *Google) DeleteEvent(ctx context.Context, grant *domain.CalendarGrant, eventID string) error {
	const op = "internal.calendar.google.DeleteEvent"

	if grant == nil {
		return fmt.Errorf("%s: %w", op, apperrors.ErrCalendarNotAuthorized)
	}

	svc, err := g.service(ctx, grant)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrCalendarRemote, err)
	}

	if err := svc.Events.Delete(primaryCalendar, eventID).SendUpdates("all").Context(ctx).Do(); err != nil {
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrCalendarRemote, err)
	}

	return nil
}

func (g *Google) buildEvent(ev domain.InterviewEvent) *gcal.Event {
	start := ev.Start.In(g.location)
	end := start.Add(time.Duration(ev.DurationMinutes) * time.Minute)

	notes := ev.Notes
	if strings.TrimSpace(notes) == "" {
		notes = "No additional notes"
	}

	return &gcal.Event{
		Summary: fmt.Sprintf("Mock Interview - %s (%s)", ev.Role, ev.InterviewType),
		Description: fmt.Sprintf(
			"Mock Interview Request\n\nRole: %s\nType: %s\nDuration: %d minutes\n\nNotes: %s",
			ev.Role, ev.InterviewType, ev.DurationMinutes, notes,
		),
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: g.location.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: g.location.String(),
		},
		Attendees: []*gcal.EventAttendee{
			{Email: ev.RequesterEmail},
			{Email: ev.InterviewerEmail},
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             "interview-" + ev.RequestID,
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

func meetingLink(ev *gcal.Event) string {
	if ev.ConferenceData != nil {
		for _, ep := range ev.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" && ep.Uri != "" {
				return ep.Uri
			}
		}
	}

	return ev.HangoutLink
}
