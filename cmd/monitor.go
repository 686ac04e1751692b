package cmd

import (
	"expvar"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/CraigKelly/tgibbs/gibbs"
)

// Monitor serves a Coordinator's live progress over HTTP via expvar,
// adapted from the teacher's UAI-sampler progress server: same
// expvar.Map-and-http.Server shape, republished against this domain's
// phase/tick/tick-trend state instead of chain-convergence scores.
type Monitor struct {
	addr    string
	server  *http.Server
	stopped chan struct{}
}

// NewMonitor creates a Monitor that will listen on addr once started.
func NewMonitor(addr string) *Monitor {
	return &Monitor{addr: addr}
}

// Start publishes co's live state under /debug/vars and begins serving.
func (m *Monitor) Start(co *gibbs.Coordinator) error {
	if m.server != nil {
		return errors.Errorf("BUG: monitor already started")
	}

	info := expvar.NewMap("tgibbs-progress")
	info.Set("phase", expvar.Func(func() interface{} { return co.CurrentPhase() }))
	info.Set("tick", expvar.Func(func() interface{} { return co.CurrentTick() }))
	info.Set("tick-trend-older-ms", expvar.Func(func() interface{} {
		older, _ := co.TickTrend()
		return older
	}))
	info.Set("tick-trend-recent-ms", expvar.Func(func() interface{} {
		_, recent := co.TickTrend()
		return recent
	}))

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/debug/vars", http.StatusTemporaryRedirect)
	})
	mux.Handle("/debug/vars", expvar.Handler())

	m.server = &http.Server{Addr: m.addr, Handler: mux}
	m.stopped = make(chan struct{})

	started := make(chan struct{})
	go func() {
		defer close(m.stopped)
		fmt.Fprintf(os.Stderr, "progress monitor listening on %s (see /debug/vars)\n", m.addr)
		close(started)
		m.server.ListenAndServe()
	}()

	<-started
	return nil
}

// Stop shuts the monitor's HTTP server down, waiting up to two seconds.
func (m *Monitor) Stop() {
	if m.server == nil {
		return
	}
	m.server.Close()

	select {
	case <-m.stopped:
	case <-time.After(2 * time.Second):
		fmt.Fprintf(os.Stderr, "progress monitor would not stop cleanly, continuing anyway\n")
	}
}
