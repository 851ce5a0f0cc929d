// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/handlers"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/store"
)

// Command runs with the arguments that follow its name
type Command func(args []string) error

type route struct {
	usage string
	run   Command
}

// Router dispatches command lines to registered commands.
type Router struct {
	routes map[string]route
	order  []string
}

func New() *Router {
	return &Router{routes: make(map[string]route)}
}

// Handle registers cmd under name. Registering a name twice panics.
func (r *Router) Handle(name, usage string, cmd Command) {
	if _, ok := r.routes[name]; ok {
		panic("router: command registered twice: " + name)
	}
	r.routes[name] = route{usage: usage, run: cmd}
	r.order = append(r.order, name)
}

// Dispatch runs the command named by args[0].
func (r *Router) Dispatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given\n%s", models.ErrBadRequest, r.Usage())
	}
	rt, ok := r.routes[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q\n%s", models.ErrBadRequest, args[0], r.Usage())
	}
	return rt.run(args[1:])
}

// Usage lists every command in registration order
func (r *Router) Usage() string {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, name := range r.order {
		fmt.Fprintf(&b, "\n  %s", r.routes[name].usage)
	}
	return b.String()
}

func NewRouter(db *sql.DB, cfg cliparse.Config, in io.Reader, out io.Writer) *Router {
	r := New()
	s := store.New(db)

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(s, cfg, out)
	votingHandler := handlers.NewVotingHandler(s, cfg, in, out)
	resultsHandler := handlers.NewResultsHandler(s, cfg, out)

	// Election management
	r.Handle("start", "start <title> <seats>", middleware.WithLogging("start", electionHandler.Start))
	r.Handle("delete", "delete <title>", middleware.WithLogging("delete", electionHandler.Delete))
	r.Handle("run", "run <title>", middleware.WithLogging("run", electionHandler.Run))
	r.Handle("withdraw", "withdraw <title>", middleware.WithLogging("withdraw", electionHandler.Withdraw))
	r.Handle("remove", "remove <title> <member>", middleware.WithLogging("remove", electionHandler.Remove))
	r.Handle("view", "view <title>", middleware.WithLogging("view", electionHandler.View))
	r.Handle("open", "open <title>", middleware.WithLogging("open", electionHandler.Open))
	r.Handle("close", "close <title>", middleware.WithLogging("close", electionHandler.Close))

	// Voting
	r.Handle("vote", "vote <title> [choice...]", middleware.WithLogging("vote", votingHandler.Vote))
	r.Handle("ballot", "ballot <title>", middleware.WithLogging("ballot", votingHandler.MyBallot))

	// Results and vote data
	r.Handle("evaluate", "evaluate <title>", middleware.WithLogging("evaluate", resultsHandler.Evaluate))
	r.Handle("results", "results <title>", middleware.WithLogging("results", resultsHandler.Results))
	r.Handle("export", "export <title> <file>", middleware.WithLogging("export", resultsHandler.Export))
	r.Handle("import", "import <title> <file>", middleware.WithLogging("import", resultsHandler.Import))
	r.Handle("tally", "tally <file>", middleware.WithLogging("tally", resultsHandler.Tally))

	// Help
	r.Handle("help", "help", func(args []string) error {
		middleware.Respond(out, cfg.Output, models.MessageResponse{Message: r.Usage()})
		return nil
	})

	return r
}
