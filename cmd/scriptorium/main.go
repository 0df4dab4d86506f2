// Command scriptorium generates a static chapter site and a query database
// from a directory of USFM/USX source files, and answers reference and word
// lookups against a previously generated database.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/digitalbiblesociety/scriptorium/core/assembly"
	"github.com/digitalbiblesociety/scriptorium/core/ref"
	"github.com/digitalbiblesociety/scriptorium/core/render"
	"github.com/digitalbiblesociety/scriptorium/internal/logging"
	"github.com/digitalbiblesociety/scriptorium/internal/site"
	"github.com/digitalbiblesociety/scriptorium/internal/source"
	"github.com/digitalbiblesociety/scriptorium/internal/store"
)

const version = "0.1.0"

// CLI defines the command-line interface for scriptorium.
var CLI struct {
	// Global flags
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogJSON  bool   `name:"log-json" help:"Emit logs as JSON"`

	Generate GenerateCmd `cmd:"" help:"Generate chapter site and database from a source directory"`
	Lookup   LookupCmd   `cmd:"" help:"Look up a chapter by scripture reference"`
	Search   SearchCmd   `cmd:"" help:"Look up verses containing a word"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// GenerateCmd runs the full generation pipeline.
type GenerateCmd struct {
	In      string `name:"in" short:"i" required:"" type:"existingdir" env:"SCRIPTORIUM_IN" help:"Source directory (USFM/USX files)"`
	Out     string `name:"out" short:"o" required:"" type:"path" env:"SCRIPTORIUM_OUT" help:"Output directory for the site"`
	DB      string `name:"db" type:"path" env:"SCRIPTORIUM_DB" help:"Optional SQLite database to write"`
	About   string `name:"about" type:"path" help:"Markdown file rendered as the about page"`
	Lang    string `name:"lang" default:"en" env:"SCRIPTORIUM_LANG" help:"Language code for verse indexing"`
	NoIndex bool   `name:"no-index" help:"Skip building the verse search index"`
}

func (c *GenerateCmd) Run() error {
	runID := logging.NewRunID()
	log := logging.GetLogger().With("run_id", runID)

	units, err := source.LoadDir(c.In)
	if err != nil {
		return err
	}
	log.Info("sources_loaded", "dir", c.In, "units", len(units))

	about := ""
	if c.About != "" {
		if about, err = site.LoadAbout(c.About); err != nil {
			return err
		}
	}

	opts := &assembly.Options{Lang: c.Lang, AboutHTML: about}
	engine := assembly.NewEngine(render.HTML{}, opts, !c.NoIndex)
	for _, u := range units {
		before := len(opts.Sections)
		if err := engine.ProcessUnit(u); err != nil {
			return err
		}
		logging.UnitProcessed(u.Name, opts.Divisions[len(opts.Divisions)-1], len(opts.Sections)-before, "run_id", runID)
	}
	res := engine.Finish()
	log.Info("assembled", "chapters", len(res.Chapters), "indexed_words", len(res.Index.Postings))
	logging.UnparsedTags(res.UnparsedTags, "run_id", runID)

	w := site.NewWriter(c.Out, runID)
	if err := w.Write(res, opts); err != nil {
		return err
	}
	log.Info("site_written", "dir", c.Out, "files", len(w.Manifest().Files))

	if c.DB != "" {
		s, err := store.Open(c.DB)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.SaveRun(res, c.Lang, runID); err != nil {
			return err
		}
		log.Info("database_written", "path", c.DB, "driver", store.DriverType())
	}
	return nil
}

// LookupCmd resolves a reference against a generated database and prints
// the chapter.
type LookupCmd struct {
	DB        string `name:"db" required:"" type:"existingfile" env:"SCRIPTORIUM_DB" help:"SQLite database from a generate run"`
	Reference string `arg:"" help:"Scripture reference, e.g. 'Genesis 1' or 'Gen.1.3'"`
	HTML      bool   `name:"html" help:"Print the chapter HTML body instead of the summary"`
}

func (c *LookupCmd) Run() error {
	r, err := ref.Parse(c.Reference)
	if err != nil {
		return err
	}
	chapter := r.ChapterStart
	if chapter == 0 {
		chapter = 1
	}

	s, err := store.Open(c.DB)
	if err != nil {
		return err
	}
	defer s.Close()

	wrapper := render.HTML{}
	ch, err := s.Chapter(wrapper.ChapterCode(r.Book, strconv.Itoa(chapter)))
	if err != nil {
		return err
	}

	if c.HTML {
		fmt.Println(ch.HTML)
		return nil
	}
	fmt.Printf("%s\t%s\n", ch.ID, ch.Title)
	if ch.PrevID != "" {
		fmt.Printf("prev\t%s\n", ch.PrevID)
	}
	if ch.NextID != "" {
		fmt.Printf("next\t%s\n", ch.NextID)
	}
	return nil
}

// SearchCmd looks a word up in the stored verse index.
type SearchCmd struct {
	DB   string `name:"db" required:"" type:"existingfile" env:"SCRIPTORIUM_DB" help:"SQLite database from a generate run"`
	Word string `arg:"" help:"Word to look up"`
}

func (c *SearchCmd) Run() error {
	s, err := store.Open(c.DB)
	if err != nil {
		return err
	}
	defer s.Close()

	verses, err := s.Verses(strings.ToLower(strings.TrimSpace(c.Word)))
	if err != nil {
		return err
	}
	if len(verses) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, id := range verses {
		fmt.Println(id)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("scriptorium %s (sqlite driver: %s)\n", version, store.DriverType())
	return nil
}

func main() {
	// A .env alongside the binary can preset SCRIPTORIUM_* variables;
	// absence is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("scriptorium"),
		kong.Description("USFM/USX chapter site generator"),
		kong.UsageOnError(),
	)

	level := logging.LevelInfo
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	format := logging.FormatText
	if CLI.LogJSON {
		format = logging.FormatJSON
	}
	logging.Init(level, format)

	if err := ctx.Run(); err != nil {
		logging.Error("command failed", "error", err)
		os.Exit(1)
	}
}
