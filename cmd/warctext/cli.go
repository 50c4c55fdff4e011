package main

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Input          string   `short:"i" required:"" type:"existingfile" help:"WARC archive to read (plain or gzip)."`
	Output         string   `short:"o" required:"" type:"path" help:"Destination file for extracted text."`
	Overwrite      bool     `help:"Replace the output file if it already exists."`
	Format         string   `default:"text" enum:"text,structured" help:"Output format: text (archive-style) or structured (JSON array)."`
	Processor      []string `short:"p" help:"Extraction backend to try, in order (repeatable). Defaults to ${default_processors}."`
	Workers        int      `short:"w" default:"1" help:"Number of parallel workers (text format only)."`
	DetectLanguage bool     `help:"Annotate each record with its detected content language."`
	Verbose        bool     `short:"v" help:"Log per-record extraction detail to stderr."`
}
