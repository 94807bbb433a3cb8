// Package admin implements the administrative command dispatcher.
//
// An administrative request arrives as a pseudo-key of the form
// "name(arg1,arg2,...)" or bare "name". Most commands are synchronous
// lookups against external collaborators (config, options, stats) resolved
// through an immutable table built at startup. The "route" command is the
// exception: it schedules a dry-run recording walk of the routing tree on a
// background task and replies from the task's continuation, so the
// request-serving path never blocks on the walk.
//
// Every failure is caught at this boundary and converted into an
// "ERROR: <message>" reply; the dispatcher never lets a failure propagate as
// a hard fault.
package admin

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/krouter-io/krouter/internal/logging"
	"github.com/krouter-io/krouter/internal/ops"
	"github.com/krouter-io/krouter/internal/route"
	"github.com/krouter-io/krouter/internal/stats"
	"github.com/krouter-io/krouter/internal/tasks"
)

// TreeSource yields the currently published routing tree. Reconfiguration
// swaps the whole tree atomically, so a root obtained here stays valid for
// the duration of one walk.
type TreeSource interface {
	Root() route.Node
}

// ConfigSource exposes the configuration state the "config" and
// "config_file" commands report.
type ConfigSource interface {
	// ConfigString returns the inline configuration text, or "" when the
	// configuration was loaded from a file and is not available inline.
	ConfigString() string

	// ConfigFile returns the path the configuration was loaded from, or ""
	// when there is none.
	ConfigFile() string
}

// Option is one name/value pair of the instance's option set.
type Option struct {
	Name  string
	Value string
}

// OptionsSource exposes the instance options the "options" command reports.
type OptionsSource interface {
	// Options returns all options in their documented order.
	Options() []Option

	// Option looks up a single option by name.
	Option(name string) (string, bool)
}

type commandHandler func(args []string) (string, error)

// ServiceConfig configures a Service.
type ServiceConfig struct {
	Trees   TreeSource
	Runner  *tasks.Runner
	Config  ConfigSource
	Options OptionsSource
	Stats   *stats.Stats
	Version string
	Logger  *logging.Logger
}

// Service dispatches administrative commands. The command table is built
// once at construction and never mutated afterwards.
type Service struct {
	trees   TreeSource
	runner  *tasks.Runner
	config  ConfigSource
	options OptionsSource
	stats   *stats.Stats
	version string
	logger  *logging.Logger

	commands map[string]commandHandler
}

// New builds the service and its immutable command table.
func New(cfg ServiceConfig) (*Service, error) {
	if cfg.Trees == nil {
		return nil, fmt.Errorf("admin: no tree source")
	}
	if cfg.Runner == nil {
		return nil, fmt.Errorf("admin: no task runner")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	st := cfg.Stats
	if st == nil {
		st = stats.New()
	}
	s := &Service{
		trees:   cfg.Trees,
		runner:  cfg.Runner,
		config:  cfg.Config,
		options: cfg.Options,
		stats:   st,
		version: cfg.Version,
		logger:  logger,
	}
	s.commands = map[string]commandHandler{
		"version":       s.handleVersion,
		"config":        s.handleConfig,
		"config_age":    s.handleConfigAge,
		"config_file":   s.handleConfigFile,
		"options":       s.handleOptions,
		"hostid":        s.handleHostID,
		"route_handles": s.handleRouteHandles,

		// "route" is a special case handled outside the table: it schedules
		// background work and replies asynchronously.
	}
	return s, nil
}

// HandleRequest parses the administrative command from the request's
// unprefixed key, dispatches it, and delivers exactly one reply through
// send. For "route" the reply arrives asynchronously from a background
// task; everything else replies before HandleRequest returns.
func (s *Service) HandleRequest(req *route.Request, send func(route.Reply)) {
	cmd, args := ParseCommand(req.KeyWithoutRoute())

	if cmd == "route" {
		if err := s.scheduleRouteCommand(args, send); err != nil {
			s.reply(cmd, send, "", err)
		}
		return
	}

	handler, ok := s.commands[cmd]
	if !ok {
		s.reply(cmd, send, "", fmt.Errorf("%w: %s", ErrUnknownCommand, cmd))
		return
	}
	out, err := handler(args)
	s.reply(cmd, send, out, err)
}

// reply converts a handler outcome into the wire reply: the result string
// with one trailing newline stripped on success, "ERROR: <message>" on
// failure. The reply result code is always found; errors are text, not
// protocol faults.
func (s *Service) reply(cmd string, send func(route.Reply), out string, err error) {
	if err != nil {
		s.stats.AdminCommand(cmd, "error")
		s.logger.Debugf("admin command failed", map[string]any{
			"command": cmd,
			"error":   err.Error(),
		})
		send(route.FoundReply("ERROR: " + err.Error()))
		return
	}
	s.stats.AdminCommand(cmd, "ok")
	send(route.FoundReply(strings.TrimSuffix(out, "\n")))
}

// scheduleRouteCommand validates route(op,key) synchronously, then schedules
// the recording walk. The continuation owns sending the reply.
func (s *Service) scheduleRouteCommand(args []string, send func(route.Reply)) error {
	if len(args) != 2 {
		return badArguments("route: 2 args expected")
	}
	kind, err := ops.FromName(args[0])
	if err != nil {
		return fmt.Errorf("route: %w", err)
	}
	key := args[1]

	root := s.trees.Root()
	if root == nil {
		return noData("route: no routing tree configured")
	}
	rec := route.NewRecording()
	walkReq := route.NewRecordingRequest(rec, key)
	logger := s.logger.With(map[string]any{
		"walkId": rec.ID(),
		"op":     kind.String(),
		"key":    key,
	})

	return s.runner.Schedule(
		func() (string, error) {
			// The reply of the dry-run walk is intentionally ignored; only
			// the recorded destinations matter.
			root.Route(context.Background(), walkReq, kind)
			rec.Finish()
			rec.Wait()

			dests := rec.Destinations()
			s.stats.RecordingWalk(len(dests))
			logger.Debugf("recording walk finished", map[string]any{
				"destinations": len(dests),
			})
			return strings.Join(dests, "\r\n"), nil
		},
		func(result string, err error) {
			s.reply("route", send, result, err)
		},
	)
}

func (s *Service) handleVersion(args []string) (string, error) {
	return s.version, nil
}

func (s *Service) handleConfig(args []string) (string, error) {
	if s.config == nil || s.config.ConfigString() == "" {
		return `{"error": "config is loaded from file and not available"}`, nil
	}
	return s.config.ConfigString(), nil
}

func (s *Service) handleConfigAge(args []string) (string, error) {
	age := s.stats.ConfigAge(time.Now())
	return strconv.FormatInt(int64(age.Seconds()), 10), nil
}

func (s *Service) handleConfigFile(args []string) (string, error) {
	if s.config == nil || s.config.ConfigFile() == "" {
		return "", noData("no config file found!")
	}
	return s.config.ConfigFile(), nil
}

func (s *Service) handleOptions(args []string) (string, error) {
	if len(args) > 1 {
		return "", badArguments("options: 0 or 1 args expected")
	}
	if s.options == nil {
		return "", noData("options: not available")
	}
	if len(args) == 1 {
		value, ok := s.options.Option(args[0])
		if !ok {
			return "", fmt.Errorf("options: option %s not found", args[0])
		}
		return value, nil
	}
	var b strings.Builder
	for _, opt := range s.options.Options() {
		b.WriteString(opt.Name)
		b.WriteByte(' ')
		b.WriteString(opt.Value)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func (s *Service) handleHostID(args []string) (string, error) {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(host))
	return strconv.FormatUint(uint64(h.Sum32()), 10), nil
}

// handleRouteHandles dumps the routing subtree route_handles(op,key) would
// traverse. The dump walks PossibleTargets only, so it performs no I/O and
// can run synchronously inside the command table; the recording request is
// still used so the walk is indistinguishable from the "route" one for the
// nodes.
func (s *Service) handleRouteHandles(args []string) (string, error) {
	if len(args) != 2 {
		return "", badArguments("route_handles: 2 args expected")
	}
	kind, err := ops.FromName(args[0])
	if err != nil {
		return "", fmt.Errorf("route_handles: %w", err)
	}
	root := s.trees.Root()
	if root == nil {
		return "", noData("route_handles: no routing tree configured")
	}
	rec := route.NewRecording()
	req := route.NewRecordingRequest(rec, args[1])
	return route.DumpTree(root, req, kind), nil
}

// ParseCommand splits an administrative pseudo-key into a command name and
// its argument list. "name(a,b)" yields name and [a b]; anything without a
// trailing ')' after a '(' is treated as a bare name.
func ParseCommand(key string) (string, []string) {
	open := strings.IndexByte(key, '(')
	if open < 0 || !strings.HasSuffix(key, ")") {
		return key, nil
	}
	name := key[:open]
	argsStr := key[open+1 : len(key)-1]
	if argsStr == "" {
		return name, nil
	}
	return name, strings.Split(argsStr, ",")
}
