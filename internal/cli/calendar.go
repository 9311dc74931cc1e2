package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovecli/grove/internal/config"
	"github.com/grovecli/grove/internal/services"
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Work with Google Calendar",
		Long:    `List calendars and events, and create events.`,
	}

	cmd.AddCommand(
		newCalendarListCmd(),
		newCalendarEventsCmd(),
		newCalendarAddCmd(),
	)

	return cmd
}

func newCalendarListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List calendars",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			calendar := services.NewCalendar(client)
			calendars, err := calendar.ListCalendars(cmd.Context())
			if err != nil {
				return err
			}

			dw := NewDataWriter(os.Stdout, CurrentOutputFormat())
			table := NewTableBuilder("ID", "SUMMARY", "PRIMARY")
			for _, c := range calendars {
				primary := ""
				if c.Primary {
					primary = "yes"
				}
				table.AddRow(c.ID, c.Summary, primary)
			}
			return table.Write(dw)
		},
	}
}

func newCalendarEventsCmd() *cobra.Command {
	var calendarID string
	var max int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List upcoming events",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			if calendarID == "" {
				if cfg, err := config.Load(); err == nil {
					calendarID = cfg.GetDefaultCalendar()
				}
			}

			calendar := services.NewCalendar(client)
			events, err := calendar.ListEvents(cmd.Context(), calendarID, max)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				Info("No upcoming events")
				return nil
			}

			dw := NewDataWriter(os.Stdout, CurrentOutputFormat())
			table := NewTableBuilder("START", "END", "SUMMARY", "STATUS")
			for _, e := range events {
				table.AddRow(e.Start.Display(), e.End.Display(), e.Summary, e.Status)
			}
			return table.Write(dw)
		},
	}

	cmd.Flags().StringVarP(&calendarID, "calendar", "c", "", "Calendar ID (default from config, else primary)")
	cmd.Flags().IntVarP(&max, "max", "n", 10, "Maximum number of events")

	return cmd
}

func newCalendarAddCmd() *cobra.Command {
	var calendarID string
	var summary string
	var start string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an event",
		Long:  `Create a timed event. Start is RFC 3339, e.g. 2026-08-28T14:00:00Z.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if summary == "" {
				return fmt.Errorf("--summary is required")
			}

			startTime, err := time.Parse(time.RFC3339, start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}

			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			calendar := services.NewCalendar(client)
			event, err := calendar.CreateEvent(cmd.Context(), calendarID, summary, startTime, startTime.Add(duration))
			if err != nil {
				return err
			}

			Success("Event created (id: %s)", event.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&calendarID, "calendar", "c", "", "Calendar ID (default from config, else primary)")
	cmd.Flags().StringVarP(&summary, "summary", "s", "", "Event summary")
	cmd.Flags().StringVar(&start, "start", "", "Event start time (RFC 3339)")
	cmd.Flags().DurationVarP(&duration, "duration", "d", time.Hour, "Event duration")

	return cmd
}
