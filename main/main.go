package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"code.cloudfoundry.org/clock"
	flags "github.com/jessevdk/go-flags"

	boshlog "github.com/cloudfoundry/schedutils/logger"
	"github.com/cloudfoundry/schedutils/profile"
	"github.com/cloudfoundry/schedutils/threadpriority"
	"github.com/cloudfoundry/schedutils/watcher"
)

const mainLogTag = "schedctl"

type options struct {
	Debug    bool   `long:"debug" description:"Show debug logs"`
	Profiles string `long:"profiles" description:"Path to the profiles file" default:"profiles.yml"`

	Get   getCommand   `command:"get" description:"Show the calling thread's scheduling"`
	Set   setCommand   `command:"set" description:"Set the calling thread's scheduling"`
	Apply applyCommand `command:"apply" description:"Apply a named profile to the calling thread"`
	Watch watchCommand `command:"watch" description:"Poll the calling thread and report scheduling changes"`
}

func (o *options) logger() boshlog.Logger {
	level := boshlog.LevelInfo
	if o.Debug {
		level = boshlog.LevelDebug
	}
	return boshlog.NewLogger(level)
}

type getCommand struct {
	opts *options

	Tid uint64 `long:"tid" description:"Target thread id (defaults to the calling thread)"`
}

func (c *getCommand) Execute(_ []string) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	id := targetThread(c.Tid)
	priority, err := threadpriority.GetThreadPriority(id)
	if err != nil {
		return err
	}

	fmt.Printf("thread %s priority %s\n", id.String(), priority.String())
	return nil
}

type setCommand struct {
	opts *options

	Tid      uint64 `long:"tid" description:"Target thread id (defaults to the calling thread)"`
	Priority string `long:"priority" description:"min, max, os:<value> or a value in [0; 99]" default:"min"`
	Policy   string `long:"policy" description:"normal, batch, idle, fifo, round-robin or deadline" default:"normal"`
	Runtime  string `long:"runtime" description:"Deadline runtime, e.g. 1ms"`
	Deadline string `long:"deadline" description:"Deadline relative deadline, e.g. 10ms"`
	Period   string `long:"period" description:"Deadline period, e.g. 100ms"`
}

func (c *setCommand) Execute(_ []string) error {
	priority, policy, err := profile.Profile{
		Policy:   c.Policy,
		Priority: c.prioritySpec(),
		Runtime:  c.Runtime,
		Deadline: c.Deadline,
		Period:   c.Period,
	}.Resolve()
	if err != nil {
		return err
	}
	return applyScheduling(c.opts.logger(), c.Tid, priority, policy)
}

func (c *setCommand) prioritySpec() string {
	if c.Policy == "deadline" {
		return ""
	}
	return c.Priority
}

type applyCommand struct {
	opts *options

	Tid  uint64 `long:"tid" description:"Target thread id (defaults to the calling thread)"`
	Args struct {
		Name string `positional-arg-name:"PROFILE" required:"true"`
	} `positional-args:"true"`
}

func (c *applyCommand) Execute(_ []string) error {
	profiles, err := profile.Load(c.opts.Profiles)
	if err != nil {
		return err
	}

	priority, policy, err := profiles.Lookup(c.Args.Name)
	if err != nil {
		return err
	}

	logger := c.opts.logger()
	logger.Info(mainLogTag, "applying profile %s", c.Args.Name)
	return applyScheduling(logger, c.Tid, priority, policy)
}

type watchCommand struct {
	opts *options

	Tid      uint64        `long:"tid" description:"Target thread id (defaults to the calling thread)"`
	Interval time.Duration `long:"interval" description:"Poll interval" default:"1s"`
}

func (c *watchCommand) Execute(_ []string) error {
	// When watching the calling thread, it has to outlive each poll.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	id := targetThread(c.Tid)
	w := watcher.New(watcher.NewOSScheduleReader(), id, c.Interval, clock.NewClock(), c.opts.logger())
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event := <-w.Events():
			fmt.Printf("thread %s changed from %s to %s\n",
				event.Thread.ID.String(), event.Previous.String(), event.Thread.Priority.String())
		case <-interrupt:
			return nil
		}
	}
}

func main() {
	opts := &options{}
	opts.Get.opts = opts
	opts.Set.opts = opts
	opts.Apply.opts = opts
	opts.Watch.opts = opts

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err.Error())
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func targetThread(tid uint64) threadpriority.ThreadID {
	if tid == 0 {
		return threadpriority.CurrentThreadID()
	}
	return threadpriority.NewThreadID(tid)
}

// When the calling thread is the target, its scheduling sticks until the
// process exits, so the thread is deliberately never unlocked.
func applyScheduling(logger boshlog.Logger, tid uint64, priority threadpriority.ThreadPriority, policy threadpriority.ThreadSchedulePolicy) error {
	runtime.LockOSThread()

	id := targetThread(tid)
	if err := threadpriority.SetThreadScheduling(id, priority, policy); err != nil {
		return err
	}

	logger.Debug(mainLogTag, "thread %s now %s under %s", id.String(), priority.String(), policy.String())
	return nil
}
