package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
)

// sampleBooks are public-domain titles used to fill an empty shelf.
var sampleBooks = []books.BookFields{
	{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Romance", Year: "1813"},
	{Title: "Frankenstein", Author: "Mary Shelley", Genre: "Gothic", Year: "1818"},
	{Title: "Moby-Dick", Author: "Herman Melville", Genre: "Adventure", Year: "1851"},
	{Title: "Great Expectations", Author: "Charles Dickens", Genre: "Bildungsroman", Year: "1861"},
	{Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", Genre: "Psychological Fiction", Year: "1866"},
	{Title: "Little Women", Author: "Louisa May Alcott", Genre: "Coming-of-age", Year: "1868"},
	{Title: "Middlemarch", Author: "George Eliot", Genre: "Realist Fiction", Year: "1871"},
	{Title: "Anna Karenina", Author: "Leo Tolstoy", Genre: "Realist Fiction", Year: "1878"},
	{Title: "Adventures of Huckleberry Finn", Author: "Mark Twain", Genre: "Adventure", Year: "1884"},
	{Title: "The Picture of Dorian Gray", Author: "Oscar Wilde", Genre: "Gothic", Year: "1890"},
	{Title: "Dracula", Author: "Bram Stoker", Genre: "Horror", Year: "1897"},
	{Title: "The Time Machine", Author: "H. G. Wells", Genre: "Science Fiction", Year: "1895"},
	{Title: "Heart of Darkness", Author: "Joseph Conrad", Genre: "Novella", Year: "1899"},
	{Title: "The Hound of the Baskervilles", Author: "Arthur Conan Doyle", Genre: "Mystery", Year: "1902"},
	{Title: "The Art of War", Author: "Sun Tzu", Genre: "Philosophy"},
}

// SeedCommand fills the books table with sample data.
type SeedCommand struct {
	Database config.Database
	Force    bool

	Out io.Writer
}

// NewSeedCommand creates a seed command whose flags default to cfg.
func NewSeedCommand(cfg config.Database) *SeedCommand {
	return &SeedCommand{Database: cfg, Out: os.Stdout}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, "Path to the SQLite database file")
	fs.StringVar(&cmd.Database.Driver, "driver", cmd.Database.Driver, "Database driver: sqlite or postgres")
	fs.StringVar(&cmd.Database.DSN, "dsn", cmd.Database.DSN, "PostgreSQL connection string (postgres driver only)")
	fs.BoolVar(&cmd.Force, "force", false, "Insert the sample books even when the shelf is not empty")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Insert %d public-domain books into the bookshelf.\n", len(sampleBooks))
		fmt.Fprintf(os.Stderr, "Nothing is inserted when books already exist, unless -force is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	return cmd.Database.Validate()
}

func (cmd *SeedCommand) Run() error {
	db, err := database.NewDatabase(cmd.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := books.NewRepository(db.DB)

	existing, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if existing > 0 && !cmd.Force {
		fmt.Fprintf(cmd.Out, "Shelf already has %d books, skipping (use -force to add samples anyway)\n", existing)
		return nil
	}

	for _, fields := range sampleBooks {
		if _, err := repo.Create(ctx, fields); err != nil {
			return fmt.Errorf("failed to seed %q: %w", fields.Title, err)
		}
	}

	fmt.Fprintf(cmd.Out, "Added %d books\n", len(sampleBooks))
	return nil
}
