package speedicon

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/speedometer/speedicon/utils"
)

// discardLogger is used by the generators when no logger has been provided.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Ops holds the options of a complete generation run.
type Ops struct {
	// Src is the image to convert. It's ignored by the drawer.
	Src string
	// Dst is the destination ICO file.
	Dst string
	// Preview is the destination of the single resolution preview. It's ignored by the converter.
	Preview string
	Sizes   []int
	// Out receives the progress messages, os.Stderr if nil.
	Out io.Writer
	// Interactive shows a spinner instead of plain progress lines.
	Interactive bool
}

// Generator is implemented by the icon generators run by the commands.
type Generator interface {
	Execute(op *Ops) error
}

var (
	_ Generator = (*Drawer)(nil)
	_ Generator = (*Converter)(nil)
)

// Execute draws the icon at every size of op, then writes the bundle and its preview.
func (d *Drawer) Execute(op *Ops) error {
	sizes := op.Sizes
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	dst := valueOr(op.Dst, DefaultIconPath)
	preview := valueOr(op.Preview, DefaultPreviewPath)
	if ext := filepath.Ext(preview); !isValidExtension(ext, previewExtensions) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	pr := newProgress(op, "SpeedoMeter Icon Generator")
	defer pr.close()
	now := time.Now()

	b, err := d.drawAll(sizes, func(size int) {
		pr.step(fmt.Sprintf("Generating %s icon...", utils.FormatSize(size)))
	})
	if err != nil {
		pr.fail("drawing the icon failed")
		return err
	}
	if err := b.Verify(sizes); err != nil {
		pr.fail("the icon bundle is incomplete")
		return err
	}

	pr.step(fmt.Sprintf("Saving as %s...", dst))
	if err := b.WriteFile(dst); err != nil {
		pr.fail("writing the icon failed")
		return err
	}
	if err := b.WritePreview(preview); err != nil {
		pr.fail("writing the preview failed")
		return err
	}
	pr.done("Icon Generation Complete!")

	pr.printf("\n%s ICO file: %s\n", utils.DecorateText("✔", utils.SuccessMessage), dst)
	pr.printf("%s Preview: %s\n", utils.DecorateText("✔", utils.SuccessMessage), preview)
	pr.printf("\nSizes included: %s\n", utils.DecorateText(utils.FormatSizes(b.Sizes()), utils.StatusMessage))
	pr.printf("Execution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// Execute rasterizes op.Src at every size of op and writes the bundle.
// Nothing is written if the source can't be loaded.
func (c *Converter) Execute(op *Ops) error {
	sizes := op.Sizes
	if len(sizes) == 0 {
		sizes = c.sizes()
	}
	src := valueOr(op.Src, DefaultSVGPath)
	dst := valueOr(op.Dst, DefaultIconPath)

	pr := newProgress(op, "SVG to ICO Converter")
	defer pr.close()
	now := time.Now()

	b, err := c.convert(src, sizes, func(size int) {
		pr.step(fmt.Sprintf("Rasterizing %s at %s...", filepath.Base(src), utils.FormatSize(size)))
	})
	if err != nil {
		pr.fail("converting the image failed")
		return err
	}

	pr.step(fmt.Sprintf("Saving as %s...", dst))
	if err := b.WriteFile(dst); err != nil {
		pr.fail("writing the icon failed")
		return err
	}
	pr.done("Icon generation complete!")

	pr.printf("\nThe icon has been saved to: %s\n", utils.DecorateText(dst, utils.SuccessMessage))
	pr.printf("Sizes included: %s\n", utils.DecorateText(utils.FormatSizes(b.Sizes()), utils.StatusMessage))
	pr.printf("Execution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// progress reports the steps of a run, either through a spinner or as plain lines.
type progress struct {
	out     io.Writer
	title   string
	spinner *utils.Spinner
	signals chan os.Signal
}

func newProgress(op *Ops, title string) *progress {
	out := op.Out
	if out == nil {
		out = os.Stderr
	}
	p := &progress{out: out, title: utils.DecorateText("⚡ "+title, utils.StatusMessage)}
	fmt.Fprintf(out, "%s\n\n", p.title)

	if op.Interactive {
		p.spinner = utils.NewSpinner(out, p.title, time.Millisecond*80, true)

		// Capture CTRL-C signal and restore the cursor visibility back.
		p.signals = make(chan os.Signal, 1)
		signal.Notify(p.signals, os.Interrupt, syscall.SIGTERM)
		go func(sig <-chan os.Signal, s *utils.Spinner) {
			if _, ok := <-sig; ok {
				s.Stop()
				s.RestoreCursor()
				os.Exit(1)
			}
		}(p.signals, p.spinner)
	}
	return p
}

func (p *progress) step(msg string) {
	if p.spinner == nil {
		fmt.Fprintln(p.out, utils.DecorateText(msg, utils.DefaultMessage))
		return
	}
	p.spinner.SetMessage(fmt.Sprintf("%s %s", p.title, utils.DecorateText("⇢ "+msg, utils.DefaultMessage)))
	p.spinner.Start()
}

func (p *progress) done(msg string) {
	p.finish(fmt.Sprintf("%s %s\n", utils.DecorateText(msg, utils.SuccessMessage), utils.DecorateText("✔", utils.SuccessMessage)))
}

func (p *progress) fail(msg string) {
	p.finish(fmt.Sprintf("%s %s\n", utils.DecorateText(msg, utils.DefaultMessage), utils.DecorateText("✘", utils.ErrorMessage)))
}

func (p *progress) finish(msg string) {
	// A run can end before its first step has started the spinner.
	if p.spinner == nil || !p.spinner.Running() {
		fmt.Fprint(p.out, msg)
		return
	}
	p.spinner.StopMsg = msg
	p.spinner.Stop()
}

func (p *progress) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// close releases the signal handler of an interactive run.
func (p *progress) close() {
	if p.signals == nil {
		return
	}
	signal.Stop(p.signals)
	close(p.signals)
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
