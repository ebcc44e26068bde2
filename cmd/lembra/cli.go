package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lembra-app/lembra/internal/config"
	"github.com/lembra-app/lembra/internal/errors"
	"github.com/lembra-app/lembra/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "lembra",
		Usage:   "Flashcard study with spaced repetition",
		Version: Version,
		Commands: []*cli.Command{
			createCmd(db, cfg),
			getCmd(db),
			listCmd(db),
			updateCmd(db),
			deleteCmd(db),
			addCardCmd(db),
			editCardCmd(db),
			removeCardCmd(db),
			dueCmd(db),
			studyCmd(db),
			exportCmd(db, cfg),
			importCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// createCmd creates the create command.
func createCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a deck (optionally reads Q:/A: card blocks from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true, Usage: "Deck title"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Deck category"},
		},
		Action: func(c *cli.Context) error {
			input := ops.CreateDeckInput{
				Title:    c.String("title"),
				Category: c.String("category"),
			}

			if stdinHasData() {
				cards, err := ops.ParseMarkdownCards(os.Stdin)
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Cards = cards
			}

			output, err := ops.CreateDeck(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch a deck by ID",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "cards", Usage: "Include the full card list"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("deck id argument is required"))
			}

			output, err := ops.FetchDeck(db, ops.FetchDeckInput{
				ID:           c.Args().First(),
				IncludeCards: c.Bool("cards"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all decks with card and due counts",
		Action: func(c *cli.Context) error {
			output, err := ops.ListDecks(db)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Rename a deck and/or change its category",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New deck title"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "New deck category"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("deck id argument is required"))
			}

			input := ops.UpdateDeckInput{ID: c.Args().First()}
			if c.IsSet("title") {
				title := c.String("title")
				input.Title = &title
			}
			if c.IsSet("category") {
				category := c.String("category")
				input.Category = &category
			}

			output, err := ops.UpdateDeck(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a deck and all of its cards",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("deck id argument is required"))
			}

			output, err := ops.DeleteDeck(db, ops.DeleteDeckInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// addCardCmd creates the add-card command.
func addCardCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "add-card",
		Usage:     "Add a card to a deck",
		ArgsUsage: "<deck-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "front", Aliases: []string{"f"}, Required: true, Usage: "Question side"},
			&cli.StringFlag{Name: "back", Aliases: []string{"b"}, Required: true, Usage: "Answer side"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("deck id argument is required"))
			}

			output, err := ops.AddCard(db, ops.AddCardInput{
				DeckID: c.Args().First(),
				Front:  c.String("front"),
				Back:   c.String("back"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// editCardCmd creates the edit-card command.
func editCardCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "edit-card",
		Usage:     "Edit a card's text (review scheduling is preserved)",
		ArgsUsage: "<deck-id> <card-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "front", Aliases: []string{"f"}, Usage: "New question side"},
			&cli.StringFlag{Name: "back", Aliases: []string{"b"}, Usage: "New answer side"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("deck id and card id arguments are required"))
			}

			input := ops.UpdateCardInput{
				DeckID: c.Args().Get(0),
				CardID: c.Args().Get(1),
			}
			if c.IsSet("front") {
				front := c.String("front")
				input.Front = &front
			}
			if c.IsSet("back") {
				back := c.String("back")
				input.Back = &back
			}

			output, err := ops.UpdateCard(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// removeCardCmd creates the remove-card command.
func removeCardCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "remove-card",
		Usage:     "Remove a card from a deck",
		ArgsUsage: "<deck-id> <card-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("deck id and card id arguments are required"))
			}

			output, err := ops.RemoveCard(db, ops.RemoveCardInput{
				DeckID: c.Args().Get(0),
				CardID: c.Args().Get(1),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// dueCmd creates the due command.
func dueCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "due",
		Usage:     "Show how many cards are due for study right now",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("deck id argument is required"))
			}

			output, err := ops.DueInfo(db, ops.DueInfoInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a deck to a .json or .html file",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.lembra/exports/<title>-<timestamp>.json)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("deck id argument is required"))
			}

			output, err := ops.ExportDeck(db, cfg, ops.ExportInput{
				DeckID: c.Args().First(),
				Path:   c.String("path"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import a deck from a .json export or .md file of Q:/A: blocks",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Collision mode: error|replace|rename"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Deck title (markdown imports)"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Deck category (markdown imports)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ImportDeck(db, cfg, ops.ImportInput{
				Path:     c.String("path"),
				Mode:     ops.ImportMode(c.String("mode")),
				Title:    c.String("title"),
				Category: c.String("category"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
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
	if lerr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", lerr.Code, lerr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
