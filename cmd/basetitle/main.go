// Command basetitle strips decoration tags from workshop item titles.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/natefinch/atomic"

	"github.com/pokerjest/workshopTitleTool/internal/config"
	"github.com/pokerjest/workshopTitleTool/internal/db"
	"github.com/pokerjest/workshopTitleTool/internal/parser"
	"github.com/pokerjest/workshopTitleTool/internal/service"
)

// CLI defines the command-line interface for basetitle.
var CLI struct {
	Config string `name:"config" short:"c" help:"Directory containing config.yaml" type:"path"`

	Clean  CleanCmd  `cmd:"" default:"withargs" help:"Print the base title of each title (args or stdin lines)"`
	Export ExportCmd `cmd:"" help:"Export the stored catalog as JSON"`
}

// CleanCmd prints base titles.
type CleanCmd struct {
	Explain bool     `name:"explain" short:"e" help:"Show every bracketed span and whether it was removed"`
	Titles  []string `arg:"" optional:"" help:"Titles to clean; reads stdin when empty"`
}

func (c *CleanCmd) Run() error {
	canon, err := loadCanonicalizer(CLI.Config)
	if err != nil {
		return err
	}
	return c.run(canon, os.Stdin, os.Stdout)
}

func (c *CleanCmd) run(canon *parser.Canonicalizer, in io.Reader, out io.Writer) error {
	emit := func(title string) {
		if !c.Explain {
			fmt.Fprintln(out, canon.BaseTitle(title))
			return
		}
		res := canon.Explain(title)
		fmt.Fprintf(out, "%s\n", res.BaseTitle)
		for _, s := range res.Spans {
			fmt.Fprintf(out, "  %-6s %-6s %q\n", s.Action, s.Kind, s.Raw(title))
		}
	}

	if len(c.Titles) > 0 {
		for _, t := range c.Titles {
			emit(t)
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		emit(strings.TrimRight(scanner.Text(), "\r"))
	}
	return scanner.Err()
}

// ExportCmd writes the catalog to a JSON file.
type ExportCmd struct {
	DB    string `name:"db" help:"SQLite database path (defaults to database.path from config)"`
	Out   string `name:"out" short:"o" default:"workshop-export.json" help:"Output JSON file path"`
	Limit int    `name:"limit" default:"0" help:"Max items to export (0 = all)"`
}

func (c *ExportCmd) Run() error {
	if err := config.LoadConfig(CLI.Config); err != nil {
		return err
	}
	path := c.DB
	if path == "" {
		path = config.AppConfig.Database.Path
	}
	n, err := c.export(path)
	if err != nil {
		return err
	}
	fmt.Println("exported", n, "items to", c.Out)
	return nil
}

func (c *ExportCmd) export(dbPath string) (int, error) {
	conn, err := db.Open(dbPath)
	if err != nil {
		return 0, err
	}
	if sqlDB, err := conn.DB(); err == nil {
		defer sqlDB.Close()
	}

	catalog := service.NewCatalogService(conn, nil, nil, nil)
	items, err := catalog.List(context.Background(), c.Limit)
	if err != nil {
		return 0, fmt.Errorf("list error: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode error: %w", err)
	}
	if err := atomic.WriteFile(c.Out, bytes.NewReader(data)); err != nil {
		return 0, fmt.Errorf("write error: %w", err)
	}
	return len(items), nil
}

func loadCanonicalizer(configDir string) (*parser.Canonicalizer, error) {
	if err := config.LoadConfig(configDir); err != nil {
		return nil, err
	}
	return service.NewCanonicalizer(config.AppConfig.Title)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("basetitle"),
		kong.Description("Strip decoration tags from workshop item titles"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
