package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saxbophone/sxbp/internal/figure"
	"github.com/saxbophone/sxbp/internal/render"
	"github.com/saxbophone/sxbp/internal/serialise"
)

var (
	flagRenderInput  string
	flagRenderOutput string
	flagRenderFormat string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a solved spiral file to an image",
	Long: `Render a fully solved spiral file to an image. The format is taken from
the output file extension (.pbm, .png or .svg); --format overrides it, and
the configured default applies when neither is given.

Examples:
  sxbp render -i message.sxp -o message.png
  sxbp render -i message.sxp -o message.img --format svg`,
	Run: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&flagRenderInput, "input", "i", "", "Input spiral file path")
	renderCmd.Flags().StringVarP(&flagRenderOutput, "output", "o", "", "Output image file path")
	renderCmd.MarkFlagRequired("input")
	renderCmd.MarkFlagRequired("output")
	renderCmd.Flags().StringVarP(&flagRenderFormat, "format", "f", "",
		"Output format: pbm, png or svg (default from output extension)")
}

func runRender(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(flagRenderInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
	fig, err := serialise.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading spiral: %v\n", err)
		os.Exit(1)
	}

	format := pickFormat(flagRenderFormat, flagRenderOutput, cfg.Render.Format)

	out, err := os.Create(flagRenderOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	if err := renderTo(fig, format, w); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering spiral: %v\n", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %d segments as %s -> %s\n", fig.Size(), format, flagRenderOutput)
}

// pickFormat chooses the output format: an explicit flag wins, then the
// output file extension, then the configured default.
func pickFormat(flag, outputPath, configured string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".pbm":
		return "pbm"
	case ".png":
		return "png"
	case ".svg":
		return "svg"
	}
	return configured
}

// renderTo writes the figure in the given format.
func renderTo(fig *figure.Figure, format string, w *bufio.Writer) error {
	switch format {
	case "pbm":
		bmp, err := render.Rasterise(fig)
		if err != nil {
			return err
		}
		return render.WritePBM(bmp, w)
	case "png":
		bmp, err := render.Rasterise(fig)
		if err != nil {
			return err
		}
		return render.WritePNG(bmp, w)
	case "svg":
		return render.WriteSVG(fig, w)
	default:
		return fmt.Errorf("unknown format %q (want pbm, png or svg)", format)
	}
}
