package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/speedometer/speedicon"
	"github.com/speedometer/speedicon/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┌─┐┌─┐┌─┐┌┬┐┬┌─┐┌─┐┌┐┌
└─┐├─┘├┤ ├┤  ││││  │ ││││
└─┘┴  └─┘└─┘─┴┘┴└─┘└─┘┘└┘

Procedural speedometer icon generator.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	destination = flag.String("out", speedicon.DefaultIconPath, "Destination ICO file")
	preview     = flag.String("preview", speedicon.DefaultPreviewPath, "Preview image (.png, .jpg or .bmp)")
	sizes       = flag.String("sizes", joinSizes(speedicon.DefaultSizes), "Comma separated icon sizes")
	fontPath    = flag.String("font", speedicon.DefaultFont, "TrueType font of the label")
	fixed       = flag.Bool("fixed", false, "Keep the pixel offsets of the 256px drawing at every size")
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

	drawer := speedicon.NewDrawer()
	drawer.FontPath = *fontPath
	drawer.FixedOffsets = *fixed
	drawer.Logger = utils.NewLogger(stderr, *verbose, interactive)

	op := &speedicon.Ops{
		Dst:         *destination,
		Preview:     *preview,
		Sizes:       iconSizes,
		Out:         stderr,
		Interactive: interactive,
	}
	if err := drawer.Execute(op); err != nil {
		log.Fatalf("%s%s",
			utils.DecorateText("\nError generating the icon: ", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
	}
}

func joinSizes(sizes []int) string {
	s := make([]string, len(sizes))
	for i, size := range sizes {
		s[i] = fmt.Sprint(size)
	}
	return strings.Join(s, ",")
}
