// Package shell is the interactive console. It drives games by hand:
// dealing racks, trying plays, saving and resuming. Handy for
// debugging rule questions on a real board.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/jabibo/wordbattle-backend-sub000/config"
	"github.com/jabibo/wordbattle-backend-sub000/game"
	"github.com/jabibo/wordbattle-backend-sub000/gamestore"
	"github.com/jabibo/wordbattle-backend-sub000/gamestore/memory"
	redisstore "github.com/jabibo/wordbattle-backend-sub000/gamestore/redis"
	"github.com/jabibo/wordbattle-backend-sub000/lexicon"
	"github.com/jabibo/wordbattle-backend-sub000/move"
	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

type ShellController struct {
	l        *readline.Instance
	cfg      *config.Config
	store    gamestore.Store
	registry *lexicon.Registry

	curGame *game.Game
	seed    uint64
	seeded  bool
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController builds the shell. It talks to redis when the
// config names a redis URL and keeps games in memory otherwise.
func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mwordbattle>\033[0m ",
		HistoryFile:     "/tmp/wordbattle_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}

	var store gamestore.Store
	if cfg.RedisURL != "" {
		rcfg := redisstore.DefaultConfig()
		rcfg.URL = cfg.RedisURL
		rcfg.GameExpiry = cfg.GameExpiry
		rs, err := redisstore.Open(rcfg)
		if err != nil {
			log.Warn().Err(err).Msg("cannot reach redis; falling back to the in-memory store")
			store = memory.New()
		} else {
			store = rs
		}
	} else {
		store = memory.New()
	}
	return &ShellController{
		l:        l,
		cfg:      cfg,
		store:    store,
		registry: lexicon.NewRegistry(),
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) rulesFor(language string) (*game.GameRules, error) {
	lex, err := sc.registry.Lexicon(language)
	if err != nil {
		log.Debug().Str("language", language).
			Msg("no lexicon registered; every word will be accepted")
		lex = lexicon.AcceptAll{}
	}
	return game.NewGameRules(sc.cfg, language, lex)
}

func (sc *ShellController) newGame(line string) error {
	fields := strings.Fields(line)
	language := sc.cfg.DefaultLanguage
	players := []string{"player1", "player2"}
	if len(fields) > 1 {
		language = fields[1]
	}
	if len(fields) > 2 {
		players = fields[2:]
	}
	rules, err := sc.rulesFor(language)
	if err != nil {
		return err
	}
	var rng tilemapping.RandSource
	if sc.seeded {
		rng = tilemapping.SeededSource(sc.seed)
	}
	g, err := game.NewGame(rules, players, rng)
	if err != nil {
		return err
	}
	g.StartGame()
	sc.curGame = g
	sc.showMessage("started game " + g.Uid())
	sc.showMessage(g.ToDisplayText())
	return nil
}

func (sc *ShellController) requireGame() error {
	if sc.curGame == nil {
		return errors.New("please start a game first with the `new` command")
	}
	return nil
}

func (sc *ShellController) applyForOnTurn(m *move.Move) error {
	out, err := sc.curGame.ApplyMove(sc.curGame.PlayerIDOnTurn(), m)
	if err != nil {
		return err
	}
	if len(out.FormedWords) > 0 {
		sc.showMessage(fmt.Sprintf("played %v for %v points",
			strings.Join(out.FormedWords, ", "), out.PointsScored))
	}
	sc.showMessage(sc.curGame.ToDisplayText())
	if out.GameEnded {
		sc.showMessage("the game is over!")
		sc.showScores()
	}
	return nil
}

func (sc *ShellController) addPlay(line string) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return errors.New("a play looks like: play <coords> <word>, e.g. play 8D CAT")
	}
	m, err := sc.curGame.CreatePlacementMove(fields[1], fields[2])
	if err != nil {
		return err
	}
	return sc.applyForOnTurn(m)
}

func (sc *ShellController) exchange(line string) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return errors.New("exchange needs the tiles to swap, e.g. exchange ABCDEF?")
	}
	tiles, err := tilemapping.TilesFromString(fields[1],
		sc.curGame.Rules().LetterDistribution())
	if err != nil {
		return err
	}
	return sc.applyForOnTurn(move.NewExchangeMove(tiles))
}

func (sc *ShellController) setRack(line string) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return errors.New("rack needs the letters to take, e.g. rack AEINST?")
	}
	onturn := sc.curGame.PlayerOnTurn()
	if err := sc.curGame.SetRackFor(onturn, fields[1]); err != nil {
		return err
	}
	sc.showMessage(sc.curGame.ToDisplayText())
	return nil
}

func (sc *ShellController) showScores() {
	for idx, id := range sc.curGame.PlayerIDs() {
		sc.showMessage(fmt.Sprintf("%-20v %5d", id, sc.curGame.PointsFor(idx)))
	}
}

func (sc *ShellController) showHistory() {
	for i, rec := range sc.curGame.History() {
		detail := rec.Exchanged
		if len(rec.Words) > 0 {
			detail = strings.Join(rec.Words, ",")
		}
		sc.showMessage(fmt.Sprintf("%3d. %-12v %-9v %-24v %4d %5d",
			i+1, rec.PlayerID, rec.Type, detail, rec.Points, rec.Cumulative))
	}
}

func (sc *ShellController) saveGame() error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	if err := sc.store.Save(context.Background(), sc.curGame.ToSnapshot()); err != nil {
		return err
	}
	sc.showMessage("saved game " + sc.curGame.Uid())
	return nil
}

func (sc *ShellController) loadGame(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return errors.New("load needs a game id; `list` shows the saved ones")
	}
	snap, err := sc.store.Get(context.Background(), fields[1])
	if err != nil {
		return err
	}
	lex, err := sc.registry.Lexicon(snap.Language)
	if err != nil {
		lex = lexicon.AcceptAll{}
	}
	g, err := game.FromSnapshot(snap, lex, nil)
	if err != nil {
		return err
	}
	sc.curGame = g
	sc.showMessage(g.ToDisplayText())
	return nil
}

func (sc *ShellController) listGames() error {
	ids, err := sc.store.List(context.Background())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		sc.showMessage("no saved games")
		return nil
	}
	for _, id := range ids {
		sc.showMessage(id)
	}
	return nil
}

func (sc *ShellController) loadLexicon(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return errors.New("lexicon needs a language and a word list path")
	}
	language, path := fields[1], fields[2]
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	lex, err := lexicon.LoadWordSetFile(name, path)
	if err != nil {
		return err
	}
	sc.registry.Register(language, lex)
	sc.showMessage(fmt.Sprintf("registered %v (%v words) for %v",
		name, lex.NumWords(), language))
	return nil
}

func (sc *ShellController) setSeed(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return errors.New("seed needs a number")
	}
	seed, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return err
	}
	sc.seed = seed
	sc.seeded = true
	sc.showMessage("the next game will shuffle with seed " + fields[1])
	return nil
}

func (sc *ShellController) setActive(line string) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	fields := strings.Fields(line)
	if len(fields) != 3 || (fields[2] != "on" && fields[2] != "off") {
		return errors.New("active looks like: active <player> <on|off>")
	}
	if err := sc.curGame.SetPlayerActive(fields[1], fields[2] == "on"); err != nil {
		return err
	}
	sc.showMessage(sc.curGame.ToDisplayText())
	return nil
}

func (sc *ShellController) executeCommand(line string, sig chan os.Signal) error {
	switch {
	case strings.HasPrefix(line, "new"):
		if err := sc.newGame(line); err != nil {
			sc.showError(err)
		}

	case line == "show" || line == "s":
		if err := sc.requireGame(); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.curGame.ToDisplayText())

	case strings.HasPrefix(line, "rack "):
		if err := sc.setRack(line); err != nil {
			sc.showError(err)
		}

	case strings.HasPrefix(line, "play "):
		if err := sc.addPlay(line); err != nil {
			sc.showError(err)
		}

	case strings.HasPrefix(line, "exchange "):
		if err := sc.exchange(line); err != nil {
			sc.showError(err)
		}

	case line == "pass":
		if err := sc.requireGame(); err != nil {
			sc.showError(err)
			break
		}
		if err := sc.applyForOnTurn(move.NewPassMove()); err != nil {
			sc.showError(err)
		}

	case line == "score":
		if err := sc.requireGame(); err != nil {
			sc.showError(err)
			break
		}
		sc.showScores()

	case line == "history":
		if err := sc.requireGame(); err != nil {
			sc.showError(err)
			break
		}
		sc.showHistory()

	case line == "save":
		if err := sc.saveGame(); err != nil {
			sc.showError(err)
		}

	case strings.HasPrefix(line, "load "):
		if err := sc.loadGame(line); err != nil {
			sc.showError(err)
		}

	case line == "list":
		if err := sc.listGames(); err != nil {
			sc.showError(err)
		}

	case strings.HasPrefix(line, "lexicon "):
		if err := sc.loadLexicon(line); err != nil {
			sc.showError(err)
		}

	case strings.HasPrefix(line, "seed "):
		if err := sc.setSeed(line); err != nil {
			sc.showError(err)
		}

	case strings.HasPrefix(line, "active "):
		if err := sc.setActive(line); err != nil {
			sc.showError(err)
		}

	case line == "bye" || line == "exit":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")

	case strings.HasPrefix(line, "help"):
		usage(sc.l.Stderr())

	default:
		if strings.TrimSpace(line) != "" {
			log.Debug().Msgf("you said: %v", strconv.Quote(line))
			sc.showMessage("unknown command; try `help`")
		}
	}
	return nil
}

// Execute runs a single command line, for one-shot invocations.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if err := sc.executeCommand(strings.TrimSpace(line), sig); err != nil {
		log.Error().Err(err).Msg("")
	}
}

// Loop reads and executes commands until the user quits.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.executeCommand(line, sig); err != nil {
			log.Error().Err(err).Msg("")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup releases the store connection, if it holds one.
func (sc *ShellController) Cleanup() {
	if closer, ok := sc.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Err(err).Msg("closing store")
		}
	}
}
