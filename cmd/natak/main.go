package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"natak/internal/config"
	"natak/internal/database"
	"natak/internal/game"
	"natak/internal/logger"
	"natak/internal/protocol"
	"natak/internal/service"
)

const usage = `usage: natak [-config file] [-db path] <command> [flags]

commands:
  new     create a game
  play    apply JSON-lines action messages to a game
  show    print a game's board and state
  replay  rebuild a game from its action log and check it against its snapshot
  list    list stored games
`

func main() {
	configPath := flag.String("config", "natak.yaml", "Config file")
	dbPath := flag.String("db", "", "Database path (overrides config)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	cfg.ApplyEnv()
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Error().Err(err).Str("command", flag.Arg(0)).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger, cmd string, args []string) error {
	rules, err := game.RulesFromConfig(cfg.Rules)
	if err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	db, err := database.New(cfg.DBPath, database.WithCompression(cfg.CompressSnapshots))
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.New(db, rules, nil, log)

	switch cmd {
	case "new":
		return cmdNew(ctx, svc, args)
	case "play":
		return cmdPlay(ctx, svc, args)
	case "show":
		return cmdShow(ctx, svc, args)
	case "replay":
		return cmdReplay(ctx, svc, args)
	case "list":
		return cmdList(ctx, db)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdNew(ctx context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	players := fs.Int("players", 4, "Number of players")
	seed := fs.Int64("seed", 0, "Random seed (0 picks one)")
	fs.Parse(args)

	var seedPtr *int64
	if *seed != 0 {
		seedPtr = seed
	}
	g, err := svc.CreateGame(ctx, *players, seedPtr)
	if err != nil {
		return err
	}
	fmt.Printf("game %s\nseed %d\norder %v\n", g.ID, g.Seed, g.Players().Order())
	return nil
}

func cmdPlay(ctx context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	gameID := fs.String("game", "", "Game id")
	file := fs.String("file", "-", "JSON-lines file of messages (- for stdin)")
	fs.Parse(args)
	if *gameID == "" {
		return errors.New("missing -game")
	}

	var in io.Reader = os.Stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	enc := json.NewEncoder(os.Stdout)
	sc := bufio.NewScanner(in)
	for n := 1; sc.Scan(); n++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg protocol.Message
		if err := json.Unmarshal(line, &msg); err != nil {
			return fmt.Errorf("bad message %q: %w", line, err)
		}
		msg.GameID = *gameID
		if msg.ID == "" {
			msg.ID = fmt.Sprintf("line-%d", n)
		}
		if err := enc.Encode(svc.Handle(ctx, &msg)); err != nil {
			return err
		}
	}
	return sc.Err()
}

func cmdShow(ctx context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	gameID := fs.String("game", "", "Game id")
	asJSON := fs.Bool("json", false, "Print the full view as JSON")
	fs.Parse(args)
	if *gameID == "" {
		return errors.New("missing -game")
	}

	g, _, err := svc.Store().Load(ctx, *gameID)
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g.View())
	}

	fmt.Print(g.Board().Debug())
	fmt.Printf("\nState: %s\n", g.State())
	fmt.Printf("Current player: %s\n", g.CurrentPlayer().Colour)
	if roll, ok := g.LastRoll(); ok {
		fmt.Printf("Last roll: %d\n", roll.Total())
	}
	for _, p := range g.Players().Players() {
		fmt.Printf("  %-6s %2d pts  %v\n", p.Colour, p.Score.Total(), p.Resources.Snapshot())
	}
	if w := g.Winner(); w != game.ColourNone {
		fmt.Printf("Winner: %s\n", w)
	}
	return nil
}

func cmdReplay(ctx context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	gameID := fs.String("game", "", "Game id")
	fs.Parse(args)
	if *gameID == "" {
		return errors.New("missing -game")
	}

	g, seq, err := svc.Store().Load(ctx, *gameID)
	if err != nil {
		return err
	}
	snap, snapSeq, err := svc.Store().Snapshot(ctx, *gameID)
	if err != nil {
		return err
	}
	if snapSeq != seq {
		return fmt.Errorf("snapshot taken after action %d, log has %d actions", snapSeq, seq)
	}

	got, err := json.Marshal(g.View())
	if err != nil {
		return err
	}
	want, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if string(got) != string(want) {
		return errors.New("replayed game differs from snapshot")
	}
	fmt.Printf("replayed %d actions: OK\n", seq)
	return nil
}

func cmdList(ctx context.Context, db *database.DB) error {
	games, err := db.ListGames(ctx, "")
	if err != nil {
		return err
	}
	for _, g := range games {
		fmt.Printf("%s  %-8s players=%d seed=%d %s\n", g.ID, g.Status, g.PlayerCount, g.Seed, g.Winner)
	}
	return nil
}
