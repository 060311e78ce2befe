package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Southclaws/fault/ftag"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordharp/chord"
	"github.com/jsphweid/chordharp/config"
	"github.com/jsphweid/chordharp/constants"
	"github.com/jsphweid/chordharp/keysig"
	"github.com/jsphweid/chordharp/model"
	"github.com/jsphweid/chordharp/voicing"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetListenAddr(), "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the pitch engine over HTTP",
	Long:  `Serves the pitch engine over HTTP. POST /resolve takes JSON, POST /resolve/csv takes a controller line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(serveAddr)
	},
}

func isBadRequest(err error) bool {
	if ftag.Get(err) == ftag.InvalidArgument {
		return true
	}
	for _, target := range []error{
		keysig.ErrInvalidIndex,
		keysig.ErrUnknownKey,
		voicing.ErrInvalidVoicingPattern,
		chord.ErrUnknownChord,
		chord.ErrInvalidDegree,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("serve: could not encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if isBadRequest(err) {
		status = http.StatusBadRequest
	}
	logger.Warn("serve: request failed",
		"path", r.URL.Path,
		"request_id", w.Header().Get("X-Request-Id"),
		"status", status,
		"err", err,
	)
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func HandleResolve(w http.ResponseWriter, r *http.Request) {
	var req model.ResolveRequest
	decoder := json.NewDecoder(io.LimitReader(r.Body, constants.MaxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, r, invalidArgument("could not decode request body: %v", err))
		return
	}

	inst, m, err := instrumentFromRequest(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := resolveVoices(inst, m)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleResolveCSV resolves the first line of the body as a controller
// frame. ?harp=true resolves the harp, ?strings=N sets its string count.
func HandleResolveCSV(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, constants.MaxRequestBytes))
	if err != nil {
		writeError(w, r, err)
		return
	}
	line, _, _ := strings.Cut(string(body), "\n")

	values := config.NewFrame(constants.FrameSlots)
	config.Deserialize(strings.TrimSpace(line), values)
	frame, err := config.Decode(values)
	if err != nil {
		writeError(w, r, err)
		return
	}

	inst := config.NewInstrument()
	inst.Frame = frame
	m := mode{chromatic: frame.Chromatic}
	m.harp, _ = strconv.ParseBool(r.URL.Query().Get("harp"))
	m.harp = m.harp || frame.Chromatic
	if s := r.URL.Query().Get("strings"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, r, invalidArgument("strings must be a positive integer, got %q", s))
			return
		}
		inst.Strings = n
	}

	res, err := resolveVoices(inst, m)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleChords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chordCatalog())
}

func HandleKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, keyCatalog())
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		logger.Debug("serve: request", "method", r.Method, "path", r.URL.Path, "request_id", id)
		next.ServeHTTP(w, r)
	})
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestID)
	router.HandleFunc("/resolve", HandleResolve).Methods("POST")
	router.HandleFunc("/resolve/csv", HandleResolveCSV).Methods("POST")
	router.HandleFunc("/chords", HandleChords).Methods("GET")
	router.HandleFunc("/keys", HandleKeys).Methods("GET")
	return cors.Default().Handler(router)
}

func serve(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("serve: listening", "addr", addr)
	return srv.ListenAndServe()
}
