package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/csvscope/csvscope/config"
	"github.com/csvscope/csvscope/internal/analysis"
	"github.com/csvscope/csvscope/internal/runner"
	"github.com/csvscope/csvscope/internal/sink"
	"github.com/csvscope/csvscope/pkg/env"
	"github.com/csvscope/csvscope/pkg/logging"
)

var (
	uiState    *sink.StateSink
	registry   *runner.Registry
	controller *runner.Controller
	server     *http.Server
)

// Response represents API response structure
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// sseFrame wraps a payload for the event stream.
type sseFrame struct {
	Type      string      `json:"type"` // "heartbeat", "state", "event"
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// loggedServeMux wraps http.ServeMux with request logging
type loggedServeMux struct {
	mux *http.ServeMux
}

func (l *loggedServeMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logging.L().WithField("method", r.Method).Debugf("request %s", r.URL.Path)
	l.mux.ServeHTTP(w, r)
}

func main() {
	env.LoadEnv()
	config.LoadConfig("./config")
	logging.InitLogger(config.Config.Debug)

	initializeAnalysis()

	// Try different ports if the default is busy
	port := config.Config.Port
	for i := 0; i < 10; i++ {
		testPort := port + i
		server = &http.Server{
			Addr:    fmt.Sprintf(":%d", testPort),
			Handler: createRouter(),
		}

		fmt.Printf("CSVScope GUI starting on http://localhost:%d\n", testPort)
		fmt.Println("Open your browser, pick a CSV file and click Run Analysis")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if strings.Contains(err.Error(), "bind:") {
				fmt.Printf("port %d is busy, trying next port...\n", testPort)
				continue
			}
			logging.L().WithError(err).Fatal("server failed to start")
		}
		break
	}
}

func initializeAnalysis() {
	uiState = sink.NewStateSink("Ready. Select a data file and click Run Analysis.")

	registry = runner.NewRegistry()
	registry.Register(runner.DefaultEntryPoint, analysis.Run)

	controller = runner.New(registry, uiState,
		runner.WithHistorySize(config.Config.HistorySize))
}

func createRouter() http.Handler {
	mux := http.NewServeMux()

	loggedMux := &loggedServeMux{mux: mux}

	// Analysis endpoints
	mux.HandleFunc("/api/analysis/run", handleRun)
	mux.HandleFunc("/api/analysis/state", handleState)
	mux.HandleFunc("/api/analysis/events", handleEvents)
	mux.HandleFunc("/api/analysis/runs", handleRuns)

	// Observability
	mux.Handle("/metrics", promhttp.Handler())

	// GUI endpoint
	mux.HandleFunc("/", handleHome)

	return loggedMux
}

func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>CSVScope - CSV Analysis Dashboard</title>
    <style>` + getCSS() + `</style>
    <script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
</head>
<body>
    <div class="app-container">` + getAppHTML() + `</div>
    <script>` + getJavaScript() + `</script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(html))
}

// handleRun reads the file content from the request and performs one
// analysis run synchronously. The page keeps its button disabled until
// this responds; the display updates arrive over the event stream.
func handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendJSONResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	content, err := readRunContent(w, r)
	if err != nil {
		sendJSONResponse(w, http.StatusBadRequest, false, "Could not read file content: "+err.Error(), nil)
		return
	}

	err = controller.Trigger(r.Context(), content)
	switch {
	case errors.Is(err, runner.ErrBusy):
		sendJSONResponse(w, http.StatusConflict, false, "Analysis already running", nil)
	case errors.Is(err, runner.ErrNoData):
		sendJSONResponse(w, http.StatusBadRequest, false, runner.NoDataMessage, nil)
	case err != nil:
		// The failure is already on the display; the envelope mirrors it.
		sendJSONResponse(w, http.StatusOK, false, err.Error(), nil)
	default:
		sendJSONResponse(w, http.StatusOK, true, "Analysis completed", nil)
	}
}

// readRunContent accepts either a multipart "file" field or the raw body.
func readRunContent(w http.ResponseWriter, r *http.Request) (string, error) {
	maxBytes := int64(config.Config.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return "", err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return "", nil
			}
			return "", err
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendJSONResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}
	sendJSONResponse(w, http.StatusOK, true, "Current display state", uiState.Snapshot())
}

func handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendJSONResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}
	runs := controller.History()
	sendJSONResponse(w, http.StatusOK, true, "Run log", map[string]interface{}{
		"runs":        runs,
		"total_count": len(runs),
	})
}

// handleEvents streams display events as server-sent events. The first
// frame is a state snapshot so late subscribers can render immediately.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := uiState.Subscribe()
	defer cancel()

	writeFrame := func(frame sseFrame) bool {
		payload, err := json.Marshal(frame)
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !writeFrame(sseFrame{Type: "state", Timestamp: time.Now(), Data: uiState.Snapshot()}) {
		return
	}

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			if !writeFrame(sseFrame{Type: "event", Timestamp: time.Now(), Data: ev}) {
				return
			}
		case <-ticker.C:
			if !writeFrame(sseFrame{Type: "heartbeat", Timestamp: time.Now(), Data: map[string]string{"status": "alive"}}) {
				return
			}
		}
	}
}

func sendJSONResponse(w http.ResponseWriter, status int, success bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}
