package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/naveenspark/notas/internal/browser"
	"github.com/naveenspark/notas/internal/config"
	"github.com/naveenspark/notas/pkg/client"
	"github.com/naveenspark/notas/pkg/domain"
)

var errUserRequired = errors.New("--user is required")

// login opens a session for the duration of one command. The token is
// never written anywhere.
func (d *deps) login(ctx context.Context, user string) (*domain.Session, error) {
	if domain.NormalizeUsername(user) == "" {
		return nil, errUserRequired
	}
	sess, err := d.client.Login(ctx, user)
	if err != nil {
		return nil, explain(err)
	}
	d.log.Debug().Str("user", sess.Username).Msg("logged in")
	return sess, nil
}

// explain turns client errors into something worth printing.
func explain(err error) error {
	switch {
	case client.IsRejected(err):
		if d := client.Detail(err); d != "" {
			return errors.New(d)
		}
	case client.IsNetwork(err):
		return fmt.Errorf("could not reach the server: %w", err)
	}
	return err
}

// withSession resolves deps, logs in and runs fn.
func withSession(g *globalFlags, cmd *cobra.Command, fn func(ctx context.Context, d *deps, sess *domain.Session) error) error {
	d, err := g.resolve(cmd)
	if err != nil {
		return err
	}
	defer d.closeLog() //nolint:errcheck // best-effort close
	ctx := cmd.Context()
	sess, err := d.login(ctx, g.user)
	if err != nil {
		return err
	}
	return fn(ctx, d, sess)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}

// -- list --

func newListCmd(g *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(g, cmd, func(ctx context.Context, d *deps, sess *domain.Session) error {
				notes, err := fetchNotes(ctx, d.client, sess)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, notes)
				}
				if len(notes) == 0 {
					fmt.Fprintln(out, "No notes found.") //nolint:errcheck
					return nil
				}
				fmt.Fprintln(out, notesTable(notes)) //nolint:errcheck
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print notes as JSON")
	return cmd
}

// fetchNotes lists notes, treating the backend's 404 as an empty list.
func fetchNotes(ctx context.Context, c *client.Client, sess *domain.Session) ([]domain.Note, error) {
	notes, err := c.ListNotes(ctx, sess)
	if client.IsStatus(err, http.StatusNotFound) {
		return []domain.Note{}, nil
	}
	if err != nil {
		return nil, explain(err)
	}
	return notes, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func notesTable(notes []domain.Note) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5d67a")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	dim := cell.Foreground(lipgloss.Color("245"))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "TITLE", "DESCRIPTION", "TAGS", "CREATED").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0 || col == 4:
				return dim
			}
			return cell
		})
	for _, n := range notes {
		created := ""
		if !n.CreatedAt.IsZero() {
			created = n.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		t.Row(strconv.Itoa(n.ID), n.Title, oneLine(n.Description, 40), n.Tags, created)
	}
	return t.String()
}

func oneLine(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > maxLen {
		return string(r[:maxLen-1]) + "…"
	}
	return s
}

// -- create / update --

type noteFlags struct {
	title       string
	description string
	tags        string
}

func (f *noteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "note title")
	cmd.Flags().StringVar(&f.description, "description", "", "note description")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma-separated tags")
}

// apply overlays the flags that were set on base.
func (f *noteFlags) apply(cmd *cobra.Command, base domain.NoteInput) domain.NoteInput {
	if cmd.Flags().Changed("title") {
		base.Title = f.title
	}
	if cmd.Flags().Changed("description") {
		base.Description = f.description
	}
	if cmd.Flags().Changed("tags") {
		base.Tags = f.tags
	}
	return base
}

func newCreateCmd(g *globalFlags) *cobra.Command {
	f := &noteFlags{}
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a note",
		Example: `notas create -u alice --title "Buy milk" --tags errand`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := f.apply(cmd, domain.NoteInput{})
			if err := in.Validate(); err != nil {
				return err
			}
			return withSession(g, cmd, func(ctx context.Context, d *deps, sess *domain.Session) error {
				if err := d.client.CreateNote(ctx, sess, in); err != nil {
					return explain(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Note created.") //nolint:errcheck
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(g *globalFlags) *cobra.Command {
	f := &noteFlags{}
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a note; fields not given keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(g, cmd, func(ctx context.Context, d *deps, sess *domain.Session) error {
				current, err := findNote(ctx, d.client, sess, id)
				if err != nil {
					return err
				}
				in := f.apply(cmd, current.Input())
				if err := in.Validate(); err != nil {
					return err
				}
				if err := d.client.UpdateNote(ctx, sess, id, in); err != nil {
					return explain(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Note %d updated.\n", id) //nolint:errcheck
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func findNote(ctx context.Context, c *client.Client, sess *domain.Session, id int) (domain.Note, error) {
	notes, err := fetchNotes(ctx, c, sess)
	if err != nil {
		return domain.Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return domain.Note{}, fmt.Errorf("note %d not found", id)
}

// -- delete --

func newDeleteCmd(g *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a note (asks first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete note %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Aborted.") //nolint:errcheck
					return nil
				}
			}
			return withSession(g, cmd, func(ctx context.Context, d *deps, sess *domain.Session) error {
				if err := d.client.DeleteNote(ctx, sess, id); err != nil {
					return explain(err)
				}
				fmt.Fprintf(out, "Note %d deleted.\n", id) //nolint:errcheck
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks a y/N question. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question) //nolint:errcheck
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true, nil
	}
	return false, nil
}

// -- web --

func newWebCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Open the notas web app in your browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := browser.Open(cfg.APIURL); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Could not open browser. Visit this URL manually:\n  %s\n", cfg.APIURL) //nolint:errcheck
			}
			return nil
		},
	}
}

// -- config --

func newConfigCmd(g *globalFlags) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `config prints the settings notas would use, after the config file,
.env, environment and flags are applied. With --save they are written
to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !save {
				data, err := cfg.Marshal()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			path := g.configPath
			if path == "" {
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path) //nolint:errcheck
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the settings to the config file")
	return cmd
}
