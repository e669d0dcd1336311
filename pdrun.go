package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/handegar/pdrun/disasm"
	"github.com/handegar/pdrun/dsp"
	"github.com/handegar/pdrun/harness"
	"github.com/handegar/pdrun/patch"
	"github.com/handegar/pdrun/reader"
	"github.com/handegar/pdrun/report"
	"github.com/handegar/pdrun/scope"
	"github.com/handegar/pdrun/settings"
	"github.com/handegar/pdrun/writer"
)

const (
	exitOK          = 0
	exitInitFailure = 1
	exitTickFailure = 2
)

// Rendered when no patch is given: a quiet 440 Hz tone on both channels
const defaultPatch = `#N canvas 0 22 450 300 10;
#X obj 30 27 osc~ 440;
#X obj 30 60 *~ 0.1;
#X obj 30 100 dac~;
#X connect 0 0 1 0;
#X connect 1 0 2 0;
#X connect 1 0 2 1;
`

func newFlagSet(s *settings.Settings) *flag.FlagSet {
	fs := flag.NewFlagSet("pdrun", flag.ContinueOnError)
	fs.StringVar(&s.PatchFile, "patch", s.PatchFile, "Pure Data patch (.pd)")
	fs.IntVar(&s.SampleRate, "sr", s.SampleRate, "Sample rate")
	fs.IntVar(&s.DurationSeconds, "duration", s.DurationSeconds, "Seconds to render")
	fs.BoolVar(&s.RawOutput, "raw", s.RawOutput, "Write dac_<n>.f32 files")
	fs.StringVar(&s.OutputDir, "raw-dir", s.OutputDir, "Directory for dac_<n>.f32 files")
	fs.StringVar(&s.OutputWav, "out", s.OutputWav, "Output wav-file")
	fs.IntVar(&s.WavPrecision, "precision", s.WavPrecision, "Bytes per wav sample (1-3)")
	fs.StringVar(&s.OutputUlaw, "ulaw", s.OutputUlaw, "Output G.711 u-law file")
	fs.StringVar(&s.ReportFile, "report", s.ReportFile, "Write a YAML session report")
	fs.BoolVar(&s.PrintCode, "print-code", s.PrintCode, "Print the compiled signal chain")
	fs.BoolVar(&s.Stream, "stream", s.Stream, "Play the result on the speaker")
	fs.BoolVar(&s.Scope, "scope", s.Scope, "Show the result in the terminal")
	fs.StringVar(&s.ViewFile, "view", s.ViewFile, "Show an existing .wav/.f32 file and exit")
	return fs
}

// parseCommandLineParameters applies the known flags to s. Everything else
// on the command line is returned as ignored.
func parseCommandLineParameters(s *settings.Settings, args []string) ([]string, error) {
	fs := newFlagSet(s)
	known, ignored := splitArguments(fs, args)
	return ignored, fs.Parse(known)
}

func splitArguments(fs *flag.FlagSet, args []string) ([]string, []string) {
	var known, ignored []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return known, append(ignored, args[i+1:]...)
		}

		name := strings.TrimLeft(arg, "-")
		if name == arg || name == "" {
			ignored = append(ignored, arg)
			continue
		}
		name, _, hasValue := strings.Cut(name, "=")
		if name == "h" || name == "help" {
			known = append(known, arg)
			continue
		}

		f := fs.Lookup(name)
		if f == nil {
			ignored = append(ignored, arg)
			continue
		}
		known = append(known, arg)

		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			continue
		}
		if !hasValue && i+1 < len(args) {
			i++
			known = append(known, args[i])
		}
	}
	return known, ignored
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fmt.Printf("* pdrun v%s\n", settings.Version)

	s, err := settings.Load()
	if err != nil {
		color.Red("Configuration failed: %s", err)
		return exitInitFailure
	}

	ignored, err := parseCommandLineParameters(s, args)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		color.Red("Invalid command line: %s", err)
		return exitInitFailure
	}
	if len(ignored) > 0 {
		color.Yellow("Ignoring arguments: %s", strings.Join(ignored, " "))
	}

	if err := s.Validate(); err != nil {
		color.Red("Invalid settings: %s", err)
		return exitInitFailure
	}

	if s.ViewFile != "" {
		if err := view(s); err != nil {
			color.Red("Viewing '%s' failed: %s", s.ViewFile, err)
			return exitInitFailure
		}
		return exitOK
	}

	return render(s)
}

func view(s *settings.Settings) error {
	frames, sampleRate, err := reader.ReadFrames(s.ViewFile, s.SampleRate)
	if err != nil {
		return err
	}
	return scope.Show(frames, sampleRate)
}

func loadPatch(s *settings.Settings) (*patch.Patch, error) {
	if s.PatchFile == "" {
		fmt.Println("* No patch specified, rendering the built-in test tone. Use the '-patch' parameter.")
		return patch.ParseString(defaultPatch)
	}
	fmt.Printf("* Reading '%s'\n", s.PatchFile)
	return reader.ReadPatch(s.PatchFile)
}

// sinksFor gives every dac~ a raw file when enabled. The first dac~ also
// feeds the in-memory buffer and the u-law file.
func sinksFor(s *settings.Settings, buffer *writer.BufferSink) dsp.SinkFactory {
	first := true
	return func(dac *patch.Object) writer.Sink {
		var sinks []writer.Sink
		if s.RawOutput {
			name := filepath.Join(s.OutputDir, fmt.Sprintf("dac_%d.f32", dac.ID))
			sinks = append(sinks, writer.NewRawSink(name))
		}
		if first {
			if buffer != nil {
				sinks = append(sinks, buffer)
			}
			if s.OutputUlaw != "" {
				sinks = append(sinks, writer.NewUlawSink(s.OutputUlaw))
			}
			first = false
		}

		switch len(sinks) {
		case 0:
			return nil
		case 1:
			return sinks[0]
		}
		return writer.Tee(sinks...)
	}
}

func render(s *settings.Settings) int {
	return renderWith(s, sinksFor)
}

func renderWith(s *settings.Settings, sinks func(*settings.Settings, *writer.BufferSink) dsp.SinkFactory) int {
	p, err := loadPatch(s)
	if err != nil {
		color.Red("Reading patch failed: %s", err)
		return exitInitFailure
	}

	var buffer *writer.BufferSink
	if s.NeedsBuffer() {
		buffer = writer.NewBufferSink(s.TotalSamples())
	}

	network, err := dsp.Compile(p, dsp.Config{
		SampleRate: s.SampleRate,
		Sinks:      sinks(s, buffer),
	})
	if err != nil {
		color.Red("Compiling patch failed: %s", err)
		return exitInitFailure
	}

	if s.PrintCode {
		disasm.PrintCodeListing(network.Chain())
	}
	if network.NumOutputs() == 0 {
		color.Yellow("Patch has no dac~, nothing will be written")
	}

	session, err := harness.NewSession(network, s.SampleRate, s.DurationSeconds)
	if err != nil {
		color.Red("%s", err)
		return exitInitFailure
	}

	fmt.Printf("* Rendering %d samples (%d Hz, %d s, %d objects)\n",
		s.TotalSamples(), s.SampleRate, s.DurationSeconds, len(network.Chain()))

	start := time.Now()
	res, runErr := session.Run()
	elapsed := time.Since(start)

	var initErr *harness.InitError
	if errors.As(runErr, &initErr) {
		color.Red("%s", initErr)
		if s.ReportFile != "" {
			writeReport(s, network, buffer, res, runErr, elapsed)
		}
		return exitInitFailure
	}

	exitCode := exitOK
	var tickErr *harness.TickError
	if errors.As(runErr, &tickErr) {
		color.Red("%s", tickErr)
		exitCode = exitTickFailure
	}
	if res.ShutdownErr != nil {
		color.Yellow("Shutdown reported an error: %s", res.ShutdownErr)
	}

	for id, flags := range network.DebugFlags() {
		if flags.HasProblems() {
			color.Yellow("dac~ #%d %s", id, flags)
		}
	}

	if s.ReportFile != "" {
		writeReport(s, network, buffer, res, runErr, elapsed)
	}

	if exitCode != exitOK {
		return exitCode
	}

	if s.OutputWav != "" {
		fmt.Printf("* Writing to '%s' (%d samples, 2 channels)\n", s.OutputWav, len(buffer.Frames))
		err := writer.SaveAsWAV(s.OutputWav, writer.Format(s.SampleRate, s.WavPrecision), buffer.Frames)
		if err != nil {
			color.Red("Writing WAV failed: %s", err)
		}
	}

	if s.Stream {
		fmt.Println("* Playing result")
		if err := writer.Play(buffer.Frames, s.SampleRate); err != nil {
			color.Red("Playback failed: %s", err)
		}
	}

	if s.Scope && len(buffer.Frames) > 0 {
		if err := scope.Show(buffer.Frames, s.SampleRate); err != nil {
			color.Red("Scope failed: %s", err)
		}
	}

	color.Green("* Done: %d ticks in %s", res.Ticks, elapsed.Round(time.Millisecond))
	return exitOK
}

func writeReport(s *settings.Settings, network *dsp.Network, buffer *writer.BufferSink,
	res harness.Result, runErr error, elapsed time.Duration) {
	name := s.PatchFile
	if name == "" {
		name = "<built-in>"
	}

	r := report.New(name, s.SampleRate, s.DurationSeconds)
	r.TotalSamples = res.TotalSamples
	r.Ticks = res.Ticks
	r.Outputs = network.NumOutputs()
	r.SetTiming(elapsed)
	if buffer != nil {
		r.Analyze(buffer.Frames)
	}
	var initErr *harness.InitError
	if errors.As(runErr, &initErr) {
		r.InitError = initErr.Error()
	} else if runErr != nil {
		r.TickError = runErr.Error()
	}
	if res.ShutdownErr != nil {
		r.ShutdownError = res.ShutdownErr.Error()
	}

	if err := r.Save(s.ReportFile); err != nil {
		color.Red("Writing report failed: %s", err)
		return
	}
	fmt.Printf("* Report written to '%s'\n", s.ReportFile)
}
