package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"github.com/zeozeozeo/psxbus/display"
	"github.com/zeozeozeo/psxbus/emulator"
	"github.com/zeozeozeo/psxbus/tracing"
)

type options struct {
	biosPath             string
	headless             bool
	steps                uint64
	instructionsPerFrame int
	profileMode          string
	tracePath            string
	breakpoints          []string
	readWatchpoints      []string
	writeWatchpoints     []string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "psxbus",
	Short: "PlayStation system bus and DMA emulator",
	Long: `psxbus runs the PlayStation BIOS against an emulated system bus: ` +
		`address decoding, DMA controller and GPU command intake.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(opts)
	},
}

func init() {
	// a missing .env file is fine, the flags have defaults
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("couldn't load .env: %s", err)
	}

	biosDefault := os.Getenv("PSXBUS_BIOS")
	if biosDefault == "" {
		biosDefault = "SCPH1001.BIN"
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.biosPath, "bios", biosDefault, "path to the BIOS file (PSXBUS_BIOS)")
	flags.BoolVar(&opts.headless, "headless", false, "run without opening a window")
	flags.Uint64Var(&opts.steps, "steps", 0, "number of instructions to run in headless mode, 0 runs forever")
	flags.IntVar(&opts.instructionsPerFrame, "instructions-per-frame", 100000, "instructions executed per displayed frame")
	flags.StringVar(&opts.profileMode, "profile", "", "write a cpu or mem profile to the working directory")
	flags.StringVar(&opts.tracePath, "trace", os.Getenv("PSXBUS_TRACE"), "record DMA transfers to this SQLite database (PSXBUS_TRACE)")
	flags.StringSliceVar(&opts.breakpoints, "break", nil, "log when the instruction at these addresses is reached")
	flags.StringSliceVar(&opts.readWatchpoints, "watch-read", nil, "log loads from these addresses")
	flags.StringSliceVar(&opts.writeWatchpoints, "watch-write", nil, "log stores to these addresses")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Fatalf("psxbus: %s", err)
	}
	atexit.Exit(0)
}

func run(opts options) error {
	switch opts.profileMode {
	case "":
	case "cpu":
		p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		atexit.Register(p.Stop)
	case "mem":
		p := profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		atexit.Register(p.Stop)
	default:
		return errors.New("--profile must be cpu or mem")
	}

	bios, err := loadBios(opts.biosPath)
	if err != nil {
		return err
	}

	gpu := emulator.NewGPU()
	inter := emulator.NewInterconnect(bios, gpu)
	cpu := emulator.NewCPU(inter)

	if opts.tracePath != "" {
		writer := tracing.NewSQLiteWriter(opts.tracePath)
		if err := writer.Init(); err != nil {
			return err
		}
		log.Printf("recording DMA transfers to %s", writer.Path())
		inter.Tracer = writer
	}

	cpu.Debugger, err = newDebugger(opts)
	if err != nil {
		return err
	}

	if !opts.headless {
		return display.Run(display.NewGame(cpu, gpu, opts.instructionsPerFrame))
	}

	// nothing consumes the primitives without a window
	gpu.DrawData = nil

	for i := uint64(0); opts.steps == 0 || i < opts.steps; i++ {
		err := cpu.RunNextInstruction()
		// debugger hits are logged by the debugger, keep running
		if err != nil && !errors.Is(err, emulator.ErrBreakpoint) {
			return err
		}
	}
	return nil
}

// Builds a debugger from the --break and --watch-* flags. Returns nil
// when none is set
func newDebugger(opts options) (*emulator.Debugger, error) {
	breakpoints, err := parseAddrs(opts.breakpoints)
	if err != nil {
		return nil, err
	}
	readWatchpoints, err := parseAddrs(opts.readWatchpoints)
	if err != nil {
		return nil, err
	}
	writeWatchpoints, err := parseAddrs(opts.writeWatchpoints)
	if err != nil {
		return nil, err
	}

	if len(breakpoints)+len(readWatchpoints)+len(writeWatchpoints) == 0 {
		return nil, nil
	}

	debugger := emulator.NewDebugger()
	for _, addr := range breakpoints {
		debugger.AddBreakpoint(addr)
	}
	for _, addr := range readWatchpoints {
		debugger.AddReadWatchpoint(addr)
	}
	for _, addr := range writeWatchpoints {
		debugger.AddWriteWatchpoint(addr)
	}
	return debugger, nil
}

// Parses addresses written in decimal, or hexadecimal with a 0x prefix
func parseAddrs(list []string) ([]uint32, error) {
	addrs := make([]uint32, 0, len(list))
	for _, s := range list {
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", s, err)
		}
		addrs = append(addrs, uint32(v))
	}
	return addrs, nil
}

func loadBios(path string) (*emulator.BIOS, error) {
	log.Printf("loading bios \"%s\"", path)
	start := time.Now()

	// read bios
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// load bios
	bios, err := emulator.LoadBIOS(file)
	if err != nil {
		return nil, err
	}

	log.Printf("loaded bios in %s", time.Since(start))
	return bios, nil
}
