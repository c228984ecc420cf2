// BrewSmith is a terminal beer recipe builder and brew-day assistant.
//
// Usage:
//
//	brewsmith [-verbose] [-quiet] [-data-dir DIR] [-memory]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/brewsmith/brewsmith/internal/command"
	"github.com/brewsmith/brewsmith/internal/display"
	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/engine"
	"github.com/brewsmith/brewsmith/internal/logger"
	"github.com/brewsmith/brewsmith/internal/storage"
	"github.com/brewsmith/brewsmith/internal/timer"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".brewsmith/brewsmith.log", "file to write logs to (use \"stderr\" to log to console)")
	dataDir := flag.String("data-dir", defaultDataDir(), "directory for recipe and session files")
	memory := flag.Bool("memory", false, "keep everything in memory, write nothing to disk")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package to the same output so third-party
	// libraries don't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context, cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire stores: JSON files under the data dir, or pure in-memory.
	var (
		recipes  domain.RecipeStore
		versions domain.VersionStore
		sessions domain.SessionStore
	)
	if *memory {
		recipes = storage.NewMemoryRecipeStore(log)
		versions = storage.NewMemoryVersionStore(log)
		sessions = storage.NewMemorySessionStore(log)
	} else {
		var err error
		recipes, err = storage.NewFileRecipeStore(*dataDir, log)
		if err == nil {
			versions, err = storage.NewFileVersionStore(*dataDir, log)
		}
		if err == nil {
			sessions, err = storage.NewFileSessionStore(*dataDir, log)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: opening data dir %s: %v\n", *dataDir, err)
			os.Exit(1)
		}
	}
	if err := storage.Seed(ctx, recipes); err != nil {
		log.Warn("seeding example recipes: %v", err)
	}

	ui := display.NewUI(sessions)
	notifier := command.NewCLINotifier(log, ui.Printf)
	parser := command.NewKeywordParser(log)
	eng := engine.New(recipes, versions, sessions, log)

	supervisor := timer.New(sessions, notifier, log,
		timer.WithWatcher(recipes),
	)
	supervisor.Start(ctx)
	defer supervisor.Stop()

	app := &builderApp{
		engine: eng,
		parser: parser,
		log:    log,
		ui:     ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".brewsmith"
	}
	return filepath.Join(home, ".brewsmith")
}

type builderApp struct {
	engine    *engine.Engine
	parser    domain.CommandParser
	log       *logger.Logger
	ui        *display.UI
	recipeID  string // currently open recipe
	sessionID string // current brew session
}

func (a *builderApp) run(ctx context.Context) {
	a.showRecipes(ctx)

	uiCh := a.ui.InputChan()
	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		cmd, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("command: %s (args=%v)", cmd.Type, cmd.Args)
		if a.handle(ctx, cmd) {
			return
		}
	}
}

// handle dispatches one command. Returns true when the app should exit.
func (a *builderApp) handle(ctx context.Context, cmd *domain.Command) bool {
	switch cmd.Type {
	case domain.CmdHelp:
		a.showHelp()
	case domain.CmdQuit:
		a.quit(ctx)
		return true
	case domain.CmdList:
		a.showRecipes(ctx)
	case domain.CmdNew:
		a.newRecipe(ctx, cmd.Args)
	case domain.CmdOpen:
		a.openRecipe(ctx, cmd.Args)
	case domain.CmdDelete:
		a.deleteRecipe(ctx, cmd.Args)
	case domain.CmdShow:
		a.showRecipe(ctx)
	case domain.CmdStats:
		a.showStats(ctx)
	case domain.CmdBatch:
		a.setBatch(ctx, cmd.Args)
	case domain.CmdEquip:
		a.equip(ctx, cmd.Args)
	case domain.CmdGrainAdd:
		a.grainAdd(ctx, cmd.Args)
	case domain.CmdGrainRemove:
		a.grainRemove(ctx, cmd.Args)
	case domain.CmdHopAdd:
		a.hopAdd(ctx, cmd.Args)
	case domain.CmdHopRemove:
		a.hopRemove(ctx, cmd.Args)
	case domain.CmdYeast:
		a.setYeast(ctx, cmd.Args)
	case domain.CmdFermAdd:
		a.fermAdd(ctx, cmd.Args)
	case domain.CmdMashPreset:
		a.mashPreset(ctx, cmd.Args)
	case domain.CmdMashAdd:
		a.mashAdd(ctx, cmd.Args)
	case domain.CmdMashRemove:
		a.mashRemove(ctx, cmd.Args)
	case domain.CmdMashShow:
		a.mashShow(ctx)
	case domain.CmdWaterSource:
		a.waterSource(ctx, cmd.Args)
	case domain.CmdSalts:
		a.setSalts(ctx, cmd.Args)
	case domain.CmdWaterShow:
		a.waterShow(ctx)
	case domain.CmdStyle:
		a.setStyle(ctx, cmd.Args)
	case domain.CmdCompare:
		a.compareStyle(ctx)
	case domain.CmdSave:
		a.saveVersion(ctx, cmd.Args)
	case domain.CmdVersions:
		a.showVersions(ctx)
	case domain.CmdRestore:
		a.restoreVersion(ctx, cmd.Args)
	case domain.CmdBrew:
		a.startBrewDay(ctx)
	case domain.CmdNext:
		a.advance(ctx)
	case domain.CmdSkip:
		a.skip(ctx)
	case domain.CmdPause:
		a.pause(ctx)
	case domain.CmdResume:
		a.resume(ctx)
	case domain.CmdStartTimers:
		a.startTimers(ctx)
	case domain.CmdDismissTimer:
		a.dismissTimer(ctx, cmd.Args)
	case domain.CmdTimers:
		a.showTimers(ctx)
	case domain.CmdAbandon:
		a.abandon(ctx)
	case domain.CmdUnknown:
		a.ui.PrintHint(fmt.Sprintf("Didn't catch that: %q. Type 'help' for commands.", cmd.Raw))
	}
	return false
}

func (a *builderApp) quit(ctx context.Context) {
	if a.sessionID != "" {
		if err := a.engine.Abandon(ctx, a.sessionID); err != nil {
			a.log.Error("abandoning session: %v", err)
		}
		a.ui.PrintHint("Brew session abandoned.")
	}
	a.ui.PrintBody("Cheers!")
}

func (a *builderApp) showHelp() {
	a.ui.PrintHeading("Recipes:")
	a.ui.PrintBody("  list                          Show all recipes")
	a.ui.PrintBody("  new <name>                    Create a recipe")
	a.ui.PrintBody("  open <id>                     Open a recipe for editing")
	a.ui.PrintBody("  delete <id>                   Delete a recipe")
	a.ui.PrintBody("  show                          Show the open recipe")
	a.ui.PrintBody("  stats                         Show OG/FG/ABV/IBU/SRM and volumes")
	a.ui.Println("")
	a.ui.PrintHeading("Editing:")
	a.ui.PrintBody("  batch <liters>                Set batch volume")
	a.ui.PrintBody("  equip [<field> <value>]       Show or set equipment profile")
	a.ui.PrintBody("  grain add <name> <kg> <lov> <ppg> [eff%]")
	a.ui.PrintBody("  grain remove <n>              Remove fermentable n")
	a.ui.PrintBody("  hop add <name> <aa%> <g> boil <min>")
	a.ui.PrintBody("  hop add <name> <aa%> <g> whirlpool <tempC> <min>")
	a.ui.PrintBody("  hop add <name> <aa%> <g> dry <startDay> <days>")
	a.ui.PrintBody("  hop add <name> <aa%> <g> firstwort|mash")
	a.ui.PrintBody("  hop remove <n>                Remove hop n")
	a.ui.PrintBody("  yeast <name> <attenuation%>   Set the yeast")
	a.ui.PrintBody("  ferm add <name> <tempC> <days>")
	a.ui.Println("")
	a.ui.PrintHeading("Mash & water:")
	a.ui.PrintBody("  mash preset single|step       Install a mash schedule preset")
	a.ui.PrintBody("  mash add <name> <infusion|temperature|decoction> <tempC> <min>")
	a.ui.PrintBody("  mash remove <n>               Remove mash step n")
	a.ui.PrintBody("  mash                          Show the resolved mash schedule")
	a.ui.PrintBody("  water source <Ca> <Mg> <Na> <Cl> <SO4> <HCO3>")
	a.ui.PrintBody("  salts <gypsum> <CaCl2> <epsom> <NaCl> <NaHCO3>  (grams)")
	a.ui.PrintBody("  water                         Show final profile and mash/sparge split")
	a.ui.Println("")
	a.ui.PrintHeading("Style & history:")
	a.ui.PrintBody("  style <code>                  Set BJCP style (e.g. 18B)")
	a.ui.PrintBody("  compare                       Compare numbers against the style")
	a.ui.PrintBody("  save [notes]                  Snapshot the recipe as a new version")
	a.ui.PrintBody("  versions                      List saved versions")
	a.ui.PrintBody("  restore <version-id>          Restore a saved version")
	a.ui.Println("")
	a.ui.PrintHeading("Brew day:")
	a.ui.PrintBody("  brew                          Start a brew session for the open recipe")
	a.ui.PrintBody("  next / skip                   Advance or skip the current step")
	a.ui.PrintBody("  ready                         Start pending step timers")
	a.ui.PrintBody("  timers                        Show running timers")
	a.ui.PrintBody("  dismiss [timer-id]            Acknowledge a fired timer")
	a.ui.PrintBody("  pause / resume / abandon      Control the session")
	a.ui.Println("")
	a.ui.PrintBody("  help                          Show this message")
	a.ui.PrintBody("  quit                          Exit")
}
