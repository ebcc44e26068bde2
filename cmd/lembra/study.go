package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
	"github.com/lembra-app/lembra/internal/ops"
	"github.com/lembra-app/lembra/internal/session"
)

// studyCmd creates the interactive study command.
func studyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "study",
		Usage:     "Study a deck interactively",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("deck id argument is required"))
			}

			r, err := session.Start(ops.NewStore(db), nil, c.Args().First())
			if err != nil {
				return outputError(err)
			}

			if err := runStudy(r, c.App.Reader, c.App.Writer); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// runStudy drives one study session over a line-based prompt loop:
// show the front, wait for a flip, show the back, take a rating.
// Typing q at either prompt ends the session; answers already given
// stay persisted.
func runStudy(r *session.Runner, in io.Reader, out io.Writer) error {
	if r.Invalid() > 0 {
		fmt.Fprintf(out, "note: %d card(s) skipped (blank or missing fields)\n\n", r.Invalid())
	}

	if r.State() == session.StateFinished {
		fmt.Fprintln(out, "Nothing due right now. Come back later.")
		return nil
	}

	scanner := bufio.NewScanner(in)

	for r.State() == session.StateActive {
		index, total := r.Progress()
		c, err := r.Current()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Card %d/%d\n\n  %s\n\n", index+1, total, indent(c.Front))
		fmt.Fprint(out, "[enter] show answer  [q] quit > ")
		line, ok := readLine(scanner)
		if !ok || line == "q" {
			fmt.Fprintln(out, "\nSession ended. Progress is saved.")
			return nil
		}

		r.Reveal()
		c, err = r.Current()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n  %s\n\n", indent(c.Back))

		rating, quit, err := promptRating(scanner, out)
		if err != nil {
			return err
		}
		if quit {
			fmt.Fprintln(out, "\nSession ended. Progress is saved.")
			return nil
		}

		if err := r.Answer(rating); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Session complete. Well done!")
	return nil
}

// promptRating asks until it gets h, m, e or q.
func promptRating(scanner *bufio.Scanner, out io.Writer) (deck.Rating, bool, error) {
	for {
		fmt.Fprint(out, "[h]ard  [m]edium  [e]asy  [q]uit > ")
		line, ok := readLine(scanner)
		if !ok || line == "q" {
			return 0, true, nil
		}
		switch line {
		case "h", "hard":
			return deck.RatingHard, false, nil
		case "m", "medium":
			return deck.RatingMedium, false, nil
		case "e", "easy":
			return deck.RatingEasy, false, nil
		}
		fmt.Fprintln(out, "please answer h, m, e or q")
	}
}

// readLine reads one trimmed lowercase line; ok is false at EOF.
func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(scanner.Text())), true
}

// indent keeps multi-line card faces aligned under the two-space margin.
func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n  ")
}
