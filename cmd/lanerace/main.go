package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lanerace/audio"
	"github.com/lixenwraith/lanerace/genetic/persistence"
	"github.com/lixenwraith/lanerace/parameter"
	"github.com/lixenwraith/lanerace/race"
	"github.com/lixenwraith/lanerace/render"
	"github.com/lixenwraith/lanerace/trainer"
)

// options holds the parsed command line
type options struct {
	mode        string
	configPath  string
	modelPath   string
	generations int
	fps         int
	headless    bool
	seed        uint64
	mute        bool
	debug       bool
}

// activeScreen is finalized by the panic handler so the shell is left usable
var activeScreen tcell.Screen

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			if activeScreen != nil {
				activeScreen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mLANERACE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// parseOptions reads the command line, usage goes to stderr
func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("lanerace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.mode, "mode", "play", "Mode: play, train, test")
	fs.StringVar(&opts.configPath, "config", parameter.ConfigPath, "Training configuration file")
	fs.StringVar(&opts.modelPath, "model", parameter.ModelPath, "Saved model file")
	fs.IntVar(&opts.generations, "generations", 0, "Maximum generations, 0 keeps the configured value")
	fs.IntVar(&opts.fps, "fps", parameter.TicksPerSecond, "Ticks per second when rendering, 0 is unthrottled")
	fs.BoolVar(&opts.headless, "headless", false, "Train without rendering")
	fs.Uint64Var(&opts.seed, "seed", 0, "Random seed for training, 0 keeps the configured value")
	fs.BoolVar(&opts.mute, "mute", false, "Start with sound muted")
	fs.BoolVar(&opts.debug, "debug", false, "Write a debug log under ./logs")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	switch opts.mode {
	case "play", "train", "test":
	default:
		fmt.Fprintf(stderr, "Unknown mode %q\n", opts.mode)
		fs.Usage()
		return opts, fmt.Errorf("unknown mode %q", opts.mode)
	}
	if opts.generations < 0 || opts.fps < 0 {
		fmt.Fprintln(stderr, "-generations and -fps must not be negative")
		fs.Usage()
		return opts, errors.New("negative flag value")
	}
	return opts, nil
}

// run executes one mode and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch opts.mode {
	case "train":
		err = runTrain(ctx, opts, stdout)
	case "test":
		err = runTest(ctx, opts, stdout)
	default:
		err = runPlay(ctx, opts, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// session is an initialized terminal with its sound and loop driver
type session struct {
	term   tcell.Screen
	sound  *audio.SoundManager
	driver *driver
}

func openSession(opts options, track *race.Track) (*session, error) {
	term, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return nil, fmt.Errorf("initialize terminal: %w", err)
	}
	term.HideCursor()
	term.Clear()
	activeScreen = term

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		// Continue without audio
		log.Printf("audio: %v (continuing without audio)", err)
	}
	sound.SetMuted(opts.mute)

	return &session{
		term:   term,
		sound:  sound,
		driver: newDriver(term, track, sound, opts.fps),
	}, nil
}

func (s *session) close() {
	s.sound.Cleanup()
	s.term.Fini()
	activeScreen = nil
}

func runPlay(ctx context.Context, opts options, stdout io.Writer) error {
	cfg := race.DefaultConfig()
	sess, err := openSession(opts, cfg.Track)
	if err != nil {
		return err
	}

	sim := race.NewSimulation(cfg, []race.Controller{race.HumanController{Input: sess.driver.keys}})
	hud := func() render.HUD {
		return render.HUD{Mode: race.ModeSingle, Muted: sess.driver.muted()}
	}

	err = sess.driver.run(ctx, sim, hud)
	if err == nil {
		sess.driver.waitKey(ctx, fmt.Sprintf("Crashed! Final score: %d  (press any key)", sim.Score()))
	}
	sess.close()

	if err != nil && !isStop(err) {
		return err
	}
	fmt.Fprintf(stdout, "Game over. Final score: %d\n", sim.Score())
	return nil
}

func runTest(ctx context.Context, opts options, stdout io.Writer) error {
	// Load before touching the terminal so a missing model reads as a plain error
	store := persistence.NewManager(opts.modelPath)
	controller, model, err := trainer.LoadController(store)
	if err != nil {
		if errors.Is(err, persistence.ErrModelNotFound) {
			return fmt.Errorf("%w (run with -mode train first)", err)
		}
		return err
	}
	log.Printf("test: loaded model %s (generation %d, fitness %.2f)", store.FilePath(), model.Generation, model.Fitness)

	cfg := race.DefaultConfig()
	cfg.SpeedStep = parameter.SpeedStepTraining
	sess, err := openSession(opts, cfg.Track)
	if err != nil {
		return err
	}

	sim := race.NewSimulation(cfg, []race.Controller{controller})
	hud := func() render.HUD {
		return render.HUD{Mode: race.ModeSingle, Muted: sess.driver.muted()}
	}

	err = sess.driver.run(ctx, sim, hud)
	if err == nil {
		sess.driver.waitKey(ctx, fmt.Sprintf("AI crashed! Final score: %d  (press any key)", sim.Score()))
	}
	sess.close()

	if err != nil && !isStop(err) {
		return err
	}
	fmt.Fprintf(stdout, "AI crashed! Final score: %d\n", sim.Score())
	return nil
}

// trainingConfig loads the ini file and applies command line overrides
// A missing file at the default path falls back to built-in defaults
func trainingConfig(opts options) (*trainer.Config, error) {
	var cfg *trainer.Config
	if _, err := os.Stat(opts.configPath); errors.Is(err, os.ErrNotExist) && opts.configPath == parameter.ConfigPath {
		cfg = trainer.NewConfig()
	} else {
		var err error
		if cfg, err = trainer.LoadConfig(opts.configPath); err != nil {
			return nil, err
		}
	}

	if opts.generations > 0 {
		cfg.Neat.MaxGenerations = opts.generations
	}
	if opts.seed != 0 {
		cfg.Neat.Seed = opts.seed
	}
	return cfg, cfg.Validate()
}

func runTrain(ctx context.Context, opts options, stdout io.Writer) error {
	cfg, err := trainingConfig(opts)
	if err != nil {
		return err
	}
	store := persistence.NewManager(opts.modelPath)

	var (
		runner trainer.Runner
		sess   *session
	)
	if !opts.headless {
		if sess, err = openSession(opts, race.DefaultTrack()); err != nil {
			return err
		}
		runner = trainer.RunnerFunc(func(ctx context.Context, sim *race.Simulation, generation int) error {
			return sess.driver.run(ctx, sim, func() render.HUD {
				return render.HUD{Mode: race.ModeTraining, Generation: generation, Muted: sess.driver.muted()}
			})
		})
	}

	t, err := trainer.New(cfg, runner, store)
	if err != nil {
		if sess != nil {
			sess.close()
		}
		return err
	}
	if opts.headless {
		t.OnReport = func(r trainer.Report) {
			fmt.Fprintln(stdout, r)
		}
	}

	result, err := t.Run(ctx)
	if sess != nil {
		sess.close()
	}
	if err != nil && !isStop(err) {
		return err
	}
	if result.Generations == 0 {
		fmt.Fprintln(stdout, "Training stopped before the first generation finished")
		return nil
	}

	fmt.Fprintf(stdout, "Best genome after %d generation(s): fitness %.2f (found in generation %d)\n",
		result.Generations, result.Best.Score, result.BestGeneration)
	if h := result.History; len(h) > 1 {
		fmt.Fprintf(stdout, "Generation best %.2f -> %.2f, average %.2f -> %.2f\n",
			h[0].BestScore, h[len(h)-1].BestScore, h[0].AverageScore, h[len(h)-1].AverageScore)
	}
	if result.Reached {
		fmt.Fprintf(stdout, "Fitness threshold %.2f reached\n", cfg.Neat.FitnessThreshold)
	}
	if result.Saved {
		fmt.Fprintf(stdout, "Model saved to %s\n", store.FilePath())
	}
	return nil
}

// isStop reports errors that end a run at the user's request
func isStop(err error) bool {
	return errors.Is(err, errQuit) || errors.Is(err, context.Canceled)
}
