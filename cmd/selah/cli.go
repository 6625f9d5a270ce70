package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/selah/internal/calendar"
	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/notify"
	"github.com/hpungsan/selah/internal/ops"
	"github.com/hpungsan/selah/internal/web"
)

// maxContentBytes caps entry content read from stdin.
const maxContentBytes = 1 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(d *deps) *cli.App {
	app := &cli.App{
		Name:    "selah",
		Usage:   "30-day devotional journal",
		Version: Version,
		Commands: []*cli.Command{
			writeCmd(d),
			fetchCmd(d),
			deleteCmd(d),
			listCmd(d),
			searchCmd(d),
			statsCmd(d),
			exportCmd(d),
			importCmd(d),
			dayCmd(d),
			calendarCmd(d),
			completeCmd(d),
			uncompleteCmd(d),
			progressCmd(d),
			remindCmd(d),
			serveCmd(d),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// writeCmd creates the write command.
func writeCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "write",
		Usage:     "Write or rewrite the entry for a day (content from --content or stdin)",
		ArgsUsage: "<day>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Usage: "Calendar day (1-30)"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Entry title"},
			&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "Entry content"},
			&cli.StringFlag{Name: "mood", Aliases: []string{"m"}, Usage: "peaceful|grateful|challenged|joyful|reflective"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
		},
		Action: func(c *cli.Context) error {
			day, err := dayArg(c)
			if err != nil {
				return outputError(err)
			}

			content := c.String("content")
			if content == "" && stdinHasData() {
				content, err = readStdin(maxContentBytes)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
			}

			output, err := ops.Write(c.Context, d.env, ops.WriteInput{
				Day:     day,
				Title:   c.String("title"),
				Content: content,
				Mood:    c.String("mood"),
				Tags:    parseTags(c.String("tags")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch the entry for a day with its prompts",
		ArgsUsage: "<day>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Usage: "Calendar day (1-30)"},
		},
		Action: func(c *cli.Context) error {
			day, err := dayArg(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Fetch(c.Context, d.env, day)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an entry by id or by day",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Usage: "Delete the entry for this day"},
		},
		Action: func(c *cli.Context) error {
			input := ops.DeleteInput{Day: c.Int("day")}
			if c.NArg() > 0 {
				input.ID = c.Args().First()
			}

			output, err := ops.Delete(c.Context, d.env, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List entries, newest day first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mood", Aliases: []string{"m"}, Usage: "Filter by mood"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, d.env, ops.ListInput{Mood: c.String("mood")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search entry titles, content, and tags",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mood", Aliases: []string{"m"}, Usage: "Filter by mood"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Search(c.Context, d.env, ops.SearchInput{
				Query: strings.Join(c.Args().Slice(), " "),
				Mood:  c.String("mood"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show entry counts, moods, and streaks",
		Action: func(c *cli.Context) error {
			output, err := ops.Stats(c.Context, d.env)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export entries to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.selah/exports/journal-<timestamp>.jsonl)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(c.Context, d.env, ops.ExportInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import entries from a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Collision mode: error|replace"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(c.Context, d.env, ops.ImportInput{
				Path: c.String("path"),
				Mode: ops.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// dayCmd creates the day command.
func dayCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "day",
		Usage:     "Show a calendar day with its entry (today when no day is given)",
		ArgsUsage: "[day]",
		Action: func(c *cli.Context) error {
			var (
				output *ops.DayOutput
				err    error
			)
			if c.NArg() == 0 {
				output, err = ops.Today(c.Context, d.env)
			} else {
				var day int
				if day, err = dayArg(c); err == nil {
					output, err = ops.Day(c.Context, d.env, day)
				}
			}
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// calendarOutput is the calendar command payload.
type calendarOutput struct {
	Month string          `json:"month"`
	Weeks []calendar.Week `json:"weeks"`
	Days  []calendar.Day  `json:"days"`
}

// calendarCmd creates the calendar command.
func calendarCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "calendar",
		Usage: "Show the 30-day calendar",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "week", Aliases: []string{"w"}, Usage: "Only days in this week (1-4)"},
		},
		Action: func(c *cli.Context) error {
			cal := d.env.Calendar
			output := calendarOutput{
				Month: cal.Month().String(),
				Weeks: cal.Weeks(),
				Days:  cal.Days(),
			}

			if week := c.Int("week"); week != 0 {
				if week < 1 || week > len(output.Weeks) {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("week must be between 1 and %d", len(output.Weeks))))
				}
				days := make([]calendar.Day, 0, 9)
				for _, day := range output.Days {
					if day.Week == week {
						days = append(days, day)
					}
				}
				output.Days = days
			}

			return outputJSON(output)
		},
	}
}

// completeCmd creates the complete command.
func completeCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "Mark a day's activity complete",
		ArgsUsage: "<day>",
		Action: func(c *cli.Context) error {
			day, err := dayArg(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Complete(c.Context, d.env, day)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// uncompleteCmd creates the uncomplete command.
func uncompleteCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "uncomplete",
		Usage:     "Clear a day's completion mark",
		ArgsUsage: "<day>",
		Action: func(c *cli.Context) error {
			day, err := dayArg(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Uncomplete(c.Context, d.env, day)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// progressCmd creates the progress command.
func progressCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "progress",
		Usage: "Show completed days per week",
		Action: func(c *cli.Context) error {
			output, err := ops.Progress(c.Context, d.env)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// pendingOutput is the remind pending payload.
type pendingOutput struct {
	Reminders []notify.Reminder `json:"reminders"`
	Count     int               `json:"count"`
}

// runOutput is the remind run --once payload.
type runOutput struct {
	Delivered int `json:"delivered"`
}

// remindCmd creates the remind command and its subcommands.
func remindCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "remind",
		Usage: "Manage daily reminders",
		Subcommands: []*cli.Command{
			{
				Name:  "schedule",
				Usage: "Replace pending reminders with one per remaining calendar day",
				Action: func(c *cli.Context) error {
					output, err := d.scheduler.ScheduleAll(c.Context, d.env.Clock())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "cancel",
				Usage: "Cancel all pending reminders",
				Action: func(c *cli.Context) error {
					if err := d.scheduler.CancelAll(c.Context); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]bool{"cancelled": true})
				},
			},
			{
				Name:  "pending",
				Usage: "List pending reminders",
				Action: func(c *cli.Context) error {
					pending, err := d.platform.Pending(c.Context)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(pendingOutput{Reminders: pending, Count: len(pending)})
				},
			},
			{
				Name:  "run",
				Usage: "Deliver due reminders on a schedule until interrupted",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "schedule", Aliases: []string{"s"}, Value: notify.DefaultSchedule, Usage: "Cron spec for delivery checks"},
					&cli.BoolFlag{Name: "once", Usage: "Deliver due reminders once and exit"},
				},
				Action: func(c *cli.Context) error {
					runner := notify.NewRunner(d.platform, nil, c.String("schedule"), d.log)

					if c.Bool("once") {
						n, err := runner.RunOnce(c.Context)
						if err != nil {
							return outputError(err)
						}
						return outputJSON(runOutput{Delivered: n})
					}

					ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
					defer stop()
					if err := runner.Run(ctx); err != nil {
						return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid schedule %q: %v", c.String("schedule"), err)))
					}
					return nil
				},
			},
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8080, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv, err := web.NewServer(d.env, d.log, Version, c.String("bind"), c.Int("port"))
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return web.Run(srv, d.log)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if selahErr := errors.As(err); selahErr != nil {
		return cli.Exit(fmt.Sprintf("[%s] %s", selahErr.Code, selahErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// dayArg reads the day from the first positional argument, or from --day.
func dayArg(c *cli.Context) (int, error) {
	if c.NArg() > 0 {
		day, err := strconv.Atoi(c.Args().First())
		if err != nil {
			return 0, errors.NewInvalidRequest(fmt.Sprintf("invalid day %q", c.Args().First()))
		}
		return day, nil
	}
	if c.IsSet("day") {
		return c.Int("day"), nil
	}
	return 0, errors.NewInvalidRequest("day is required")
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin, failing when it exceeds limit bytes.
func readStdin(limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("stdin exceeds %d bytes", limit)
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
