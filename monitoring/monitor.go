// Package monitoring turns a splitter session into a small web server so
// the current run can be observed from a browser.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/speedkit/minishsplit/splitter"
)

// Monitor serves the state of a splitter session over HTTP. It observes the
// session through its hooks, so handlers never touch the session while a
// tick is in flight.
type Monitor struct {
	portNumber int
	session    any
	settings   any

	lock   sync.Mutex
	status splitter.Status
	splits []splitter.SplitInfo
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSession registers the session to be inspected through the
// /api/session endpoint.
func (m *Monitor) RegisterSession(session any) {
	m.session = session
}

// RegisterSettings registers the milestone toggles to be shown through the
// /api/settings endpoint.
func (m *Monitor) RegisterSettings(settings any) {
	m.settings = settings
}

// Func collects the session's hook output. Monitor implements
// splitter.Hook.
func (m *Monitor) Func(ctx splitter.HookCtx) {
	m.lock.Lock()
	defer m.lock.Unlock()

	switch ctx.Pos {
	case splitter.HookPosTick:
		status, ok := ctx.Item.(splitter.Status)
		if ok {
			m.status = status
		}
	case splitter.HookPosSplit:
		info, ok := ctx.Item.(splitter.SplitInfo)
		if ok {
			m.splits = append(m.splits, info)
		}
	case splitter.HookPosRunStart:
		m.splits = nil
	}
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() string {
	r := mux.NewRouter()

	r.HandleFunc("/api/state", m.state)
	r.HandleFunc("/api/splits", m.listSplits)
	r.HandleFunc("/api/variables", m.listVariables)
	r.HandleFunc("/api/settings", m.listSettings)
	r.HandleFunc("/api/session", m.sessionDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring splitter with %s\n", url)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()

	return url
}

type stateRsp struct {
	RunID      string  `json:"run_id"`
	TimerState string  `json:"timer_state"`
	Frame      int64   `json:"frame"`
	GameTime   float64 `json:"game_time_sec"`
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	rsp := stateRsp{
		RunID:      m.status.RunID,
		TimerState: m.status.TimerState.String(),
		Frame:      m.status.Frame,
		GameTime:   m.status.GameTime.Seconds(),
	}
	m.lock.Unlock()

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type splitRsp struct {
	RunID    string  `json:"run_id"`
	Label    string  `json:"label"`
	Frame    int64   `json:"frame"`
	GameTime float64 `json:"game_time_sec"`
}

func (m *Monitor) listSplits(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	rsp := make([]splitRsp, 0, len(m.splits))
	for _, s := range m.splits {
		rsp = append(rsp, splitRsp{
			RunID:    s.RunID,
			Label:    s.Label,
			Frame:    s.Frame,
			GameTime: s.GameTime.Seconds(),
		})
	}
	m.lock.Unlock()

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listVariables(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	variables := make(map[string]string, len(m.status.Variables))
	for k, v := range m.status.Variables {
		variables[k] = v
	}
	m.lock.Unlock()

	bytes, err := json.Marshal(variables)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listSettings(w http.ResponseWriter, _ *http.Request) {
	bytes, err := json.Marshal(m.settings)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) sessionDetails(w http.ResponseWriter, _ *http.Request) {
	if m.session == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("No session attached"))
		dieOnErr(err)

		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.session)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
