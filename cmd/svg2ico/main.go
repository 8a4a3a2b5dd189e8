package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/speedometer/speedicon"
	"github.com/speedometer/speedicon/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┬  ┬┌─┐┌─┐┬┌─┐┌─┐
└─┐└┐┌┘│ ┬┌─┘││  │ │
└─┘ └┘ └─┘└─┘┴└─┘└─┘

SVG to multi-resolution ICO converter.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", speedicon.DefaultSVGPath, "Source image (SVG, PNG, JPEG, GIF, BMP) or URL")
	destination = flag.String("out", speedicon.DefaultIconPath, "Destination ICO file")
	sizes       = flag.String("sizes", joinSizes(speedicon.ConverterSizes), "Comma separated icon sizes")
	keepAspect  = flag.Bool("keep-aspect", false, "Center non square images instead of stretching them")
	verbose     = flag.Bool("v", false, "Verbose logging")
)

func main() {
	log.SetFlags(0)

	stderr := colorable.NewColorableStderr()
	log.SetOutput(stderr)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	utils.NoColor = !interactive

	iconSizes, err := speedicon.ParseSizes(*sizes)
	if err != nil {
		log.Fatalf("%s %s",
			utils.DecorateText("Invalid -sizes flag:", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	conv := speedicon.NewConverter()
	conv.Sizes = iconSizes
	conv.KeepAspect = *keepAspect
	conv.Logger = utils.NewLogger(stderr, *verbose, interactive)

	op := &speedicon.Ops{
		Src:         *source,
		Dst:         *destination,
		Sizes:       iconSizes,
		Out:         stderr,
		Interactive: interactive,
	}
	if err := conv.Execute(op); err != nil {
		if errors.Is(err, speedicon.ErrSourceNotFound) {
			log.Fatalf("%s %s",
				utils.DecorateText("Error: SVG file not found:", utils.ErrorMessage),
				utils.DecorateText(*source, utils.DefaultMessage),
			)
		}
		log.Fatalf("%s%s",
			utils.DecorateText("\nError converting the image: ", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
	}
}

func joinSizes(sizes []int) string {
	s := make([]string, len(sizes))
	for i, size := range sizes {
		s[i] = strconv.Itoa(size)
	}
	return strings.Join(s, ",")
}
